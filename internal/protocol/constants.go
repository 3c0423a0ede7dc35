// Package protocol implements the text-based command grammar and
// response formatting subset described in the memcached wire
// protocol: set, get, delete, quit.
package protocol

// Fixed response lines. Every line the server writes is terminated
// with "\r\n".
var (
	RespStored   = []byte("STORED\r\n")
	RespDeleted  = []byte("DELETED\r\n")
	RespNotFound = []byte("NOT FOUND\r\n")
	RespEnd      = []byte("END\r\n")
	RespUnknown  = []byte("ERROR\r\n")

	ErrIncorrectArgsSet    = []byte("CLIENT_ERROR incorrect # of arguments for set command\r\n")
	ErrSetNoreplyTrailer   = []byte("CLIENT_ERROR incorrect 6th argument to set command. Expected 'noreply'\r\n")
	ErrSetKeyTooLong       = []byte("CLIENT_ERROR key length of set command exceeds 250 characters\r\n")
	ErrSetNonDigit         = []byte("CLIENT_ERROR at least one of the <flags> <exptime> <bytes> parameters contained one or more non-digit character\r\n")
	ErrSetFlagsRange       = []byte("CLIENT_ERROR the <flags> parameter is greater than the 16 bit unsigned maximum of 65535\r\n")
	ErrIncorrectArgsGet    = []byte("CLIENT_ERROR incorrect # of arguments for get command\r\n")
	ErrIncorrectArgsDelete = []byte("CLIENT_ERROR incorrect # of arguments for delete command\r\n")
	// The delete command's bad noreply trailer is reported with the
	// set command's wording, not a delete-specific one.
	ErrDeleteNoreplyTrailer = []byte("CLIENT_ERROR incorrect 3rd argument to set command. Expected 'noreply'\r\n")

	ErrDataBlockMismatch = []byte("CLIENT_ERROR the data block does not match the # of bytes passed in the set command\r\n")

	ErrServerStore  = []byte("SERVER_ERROR error storing data\r\n")
	ErrServerGet    = []byte("SERVER_ERROR error retrieving stored data\r\n")
	ErrServerDelete = []byte("SERVER_ERROR error deleting stored data\r\n")
)

// MaxKeyLength is the longest key the set command accepts.
const MaxKeyLength = 250

// MaxFlags is the inclusive upper bound of the 16 bit flags field.
const MaxFlags = 65535

const noreplyToken = "noreply"
