package protocol

import "fmt"

// FormatValueLine renders the "VALUE <key> <flags> <bytes>\r\n" header
// that precedes a get response's data block.
func FormatValueLine(key string, flags uint16, n int) []byte {
	return []byte(fmt.Sprintf("VALUE %s %d %d\r\n", key, flags, n))
}
