package protocol

import (
	"bytes"
	"strconv"
)

// ParseCommand parses one received command line — the bytes up to but
// not including its terminating "\r\n" — into a Command or a
// ClientError. It touches neither the transport nor the store: the
// same input always produces the same output.
func ParseCommand(line []byte) (*Command, *ClientError) {
	tokens := bytes.Fields(line)
	if len(tokens) == 0 {
		return nil, clientError(RespUnknown)
	}

	switch string(tokens[0]) {
	case "quit":
		return &Command{Kind: CmdQuit}, nil
	case "set":
		return parseSet(tokens)
	case "get":
		return parseGet(tokens)
	case "delete":
		return parseDelete(tokens)
	default:
		return nil, clientError(RespUnknown)
	}
}

func parseSet(tokens [][]byte) (*Command, *ClientError) {
	if len(tokens) != 5 && len(tokens) != 6 {
		return nil, clientError(ErrIncorrectArgsSet)
	}

	noReply := len(tokens) == 6
	if noReply && string(tokens[5]) != noreplyToken {
		return nil, clientError(ErrSetNoreplyTrailer)
	}

	key := tokens[1]
	if len(key) > MaxKeyLength {
		return nil, clientError(ErrSetKeyTooLong)
	}

	flagsTok, expTok, bytesTok := tokens[2], tokens[3], tokens[4]
	if !isDigitsOnly(flagsTok) || !isDigitsOnly(expTok) || !isDigitsOnly(bytesTok) {
		return nil, clientError(ErrSetNonDigit)
	}

	// A digits-only token fails to parse only by exceeding uint64
	// range, which also exceeds MaxFlags.
	flags, err := strconv.ParseUint(string(flagsTok), 10, 64)
	if err != nil || flags > MaxFlags {
		return nil, clientError(ErrSetFlagsRange)
	}

	expTime, err := strconv.ParseInt(string(expTok), 10, 64)
	if err != nil {
		return nil, clientError(ErrSetNonDigit)
	}

	n, err := strconv.Atoi(string(bytesTok))
	if err != nil {
		return nil, clientError(ErrSetNonDigit)
	}

	return &Command{
		Kind: CmdSet,
		Set: &SetHeader{
			Key:     string(key),
			Flags:   uint16(flags),
			ExpTime: expTime,
			Bytes:   n,
			NoReply: noReply,
		},
	}, nil
}

func parseGet(tokens [][]byte) (*Command, *ClientError) {
	if len(tokens) < 2 {
		return nil, clientError(ErrIncorrectArgsGet)
	}

	keys := make([]string, len(tokens)-1)
	for i, tok := range tokens[1:] {
		keys[i] = string(tok)
	}
	return &Command{Kind: CmdGet, Get: &GetCommand{Keys: keys}}, nil
}

func parseDelete(tokens [][]byte) (*Command, *ClientError) {
	if len(tokens) != 2 && len(tokens) != 3 {
		return nil, clientError(ErrIncorrectArgsDelete)
	}

	noReply := len(tokens) == 3
	if noReply && string(tokens[2]) != noreplyToken {
		return nil, clientError(ErrDeleteNoreplyTrailer)
	}

	return &Command{
		Kind:   CmdDelete,
		Delete: &DeleteCommand{Key: string(tokens[1]), NoReply: noReply},
	}, nil
}

// isDigitsOnly reports whether b is a non-empty run of ASCII digits —
// no sign, no decimal point.
func isDigitsOnly(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	for _, c := range b {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
