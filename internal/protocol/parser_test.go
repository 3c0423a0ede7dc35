package protocol

import (
	"strings"
	"testing"
)

func TestParseCommandQuit(t *testing.T) {
	cmd, cerr := ParseCommand([]byte("quit"))
	if cerr != nil {
		t.Fatalf("unexpected error: %s", cerr.Message)
	}
	if cmd.Kind != CmdQuit {
		t.Fatalf("got kind %v, want CmdQuit", cmd.Kind)
	}
}

func TestParseCommandEmptyInput(t *testing.T) {
	tests := []string{"", "   ", "\t"}
	for _, in := range tests {
		_, cerr := ParseCommand([]byte(in))
		if cerr == nil {
			t.Fatalf("ParseCommand(%q) = nil error, want ERROR", in)
		}
		if string(cerr.Message) != string(RespUnknown) {
			t.Errorf("ParseCommand(%q) = %q, want %q", in, cerr.Message, RespUnknown)
		}
	}
}

func TestParseCommandUnknown(t *testing.T) {
	_, cerr := ParseCommand([]byte("frobnicate foo"))
	if cerr == nil || string(cerr.Message) != string(RespUnknown) {
		t.Fatalf("got %v, want ERROR", cerr)
	}
}

func TestParseSetValid(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    SetHeader
	}{
		{
			name: "no noreply",
			line: "set capitalOfChina 14 2400 7",
			want: SetHeader{Key: "capitalOfChina", Flags: 14, ExpTime: 2400, Bytes: 7},
		},
		{
			name: "noreply",
			line: "set k 0 0 3 noreply",
			want: SetHeader{Key: "k", Flags: 0, ExpTime: 0, Bytes: 3, NoReply: true},
		},
		{
			name: "max flags",
			line: "set k 65535 0 3",
			want: SetHeader{Key: "k", Flags: 65535, ExpTime: 0, Bytes: 3},
		},
		{
			name: "max key length",
			line: "set " + strings.Repeat("a", 250) + " 0 0 0",
			want: SetHeader{Key: strings.Repeat("a", 250), Flags: 0, ExpTime: 0, Bytes: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, cerr := ParseCommand([]byte(tt.line))
			if cerr != nil {
				t.Fatalf("unexpected error: %s", cerr.Message)
			}
			if cmd.Kind != CmdSet {
				t.Fatalf("got kind %v, want CmdSet", cmd.Kind)
			}
			if *cmd.Set != tt.want {
				t.Errorf("got %+v, want %+v", *cmd.Set, tt.want)
			}
		})
	}
}

func TestParseSetErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []byte
	}{
		{"too few args", "set keyValue 2400 16", ErrIncorrectArgsSet},
		{"too many args", "set k 0 0 0 noreply extra", ErrIncorrectArgsSet},
		{"bad noreply trailer", "set capitalOfChina 14 2400 16 norely", ErrSetNoreplyTrailer},
		{"key too long", "set " + strings.Repeat("a", 251) + " 0 0 0", ErrSetKeyTooLong},
		{"flags non-digit", "set k abc 0 0", ErrSetNonDigit},
		{"exptime non-digit", "set k 0 abc 0", ErrSetNonDigit},
		{"bytes non-digit", "set k 0 0 abc", ErrSetNonDigit},
		{"negative flags", "set k -1 0 0", ErrSetNonDigit},
		{"decimal flags", "set k 1.5 0 0", ErrSetNonDigit},
		{"flags overflow", "set k 70000 0 3", ErrSetFlagsRange},
		{"flags overflow beyond uint64", "set k 99999999999999999999 0 3", ErrSetFlagsRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cerr := ParseCommand([]byte(tt.line))
			if cerr == nil {
				t.Fatalf("got no error, want %s", tt.want)
			}
			if string(cerr.Message) != string(tt.want) {
				t.Errorf("got %q, want %q", cerr.Message, tt.want)
			}
		})
	}
}

func TestParseSetValidationOrder(t *testing.T) {
	// noreply trailer wins over key length and digit errors.
	_, cerr := ParseCommand([]byte("set " + strings.Repeat("a", 251) + " abc abc abc norely"))
	if string(cerr.Message) != string(ErrSetNoreplyTrailer) {
		t.Errorf("got %q, want noreply-trailer error to win over key length/digit errors", cerr.Message)
	}

	// noreply trailer wins over key length.
	_, cerr = ParseCommand([]byte("set " + strings.Repeat("a", 251) + " 0 0 0 norely"))
	if string(cerr.Message) != string(ErrSetNoreplyTrailer) {
		t.Errorf("got %q, want noreply-trailer error", cerr.Message)
	}

	// key length wins over digit/range errors.
	_, cerr = ParseCommand([]byte("set " + strings.Repeat("a", 251) + " abc 0 0"))
	if string(cerr.Message) != string(ErrSetKeyTooLong) {
		t.Errorf("got %q, want key-too-long error", cerr.Message)
	}

	// digit check wins over flags range.
	_, cerr = ParseCommand([]byte("set k 70000 abc 0"))
	if string(cerr.Message) != string(ErrSetNonDigit) {
		t.Errorf("got %q, want non-digit error", cerr.Message)
	}
}

func TestParseGet(t *testing.T) {
	cmd, cerr := ParseCommand([]byte("get capitalOfChina unknownKey"))
	if cerr != nil {
		t.Fatalf("unexpected error: %s", cerr.Message)
	}
	want := []string{"capitalOfChina", "unknownKey"}
	if len(cmd.Get.Keys) != len(want) {
		t.Fatalf("got %v, want %v", cmd.Get.Keys, want)
	}
	for i := range want {
		if cmd.Get.Keys[i] != want[i] {
			t.Errorf("key[%d] = %q, want %q", i, cmd.Get.Keys[i], want[i])
		}
	}
}

func TestParseGetErrors(t *testing.T) {
	_, cerr := ParseCommand([]byte("get"))
	if cerr == nil || string(cerr.Message) != string(ErrIncorrectArgsGet) {
		t.Fatalf("got %v, want incorrect-args error", cerr)
	}
}

func TestParseDelete(t *testing.T) {
	cmd, cerr := ParseCommand([]byte("delete capitalOfChina"))
	if cerr != nil {
		t.Fatalf("unexpected error: %s", cerr.Message)
	}
	if cmd.Delete.Key != "capitalOfChina" || cmd.Delete.NoReply {
		t.Errorf("got %+v", *cmd.Delete)
	}

	cmd, cerr = ParseCommand([]byte("delete k noreply"))
	if cerr != nil {
		t.Fatalf("unexpected error: %s", cerr.Message)
	}
	if !cmd.Delete.NoReply {
		t.Errorf("expected NoReply=true")
	}
}

func TestParseDeleteErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []byte
	}{
		{"too few args", "delete", ErrIncorrectArgsDelete},
		{"too many args", "delete k noreply extra", ErrIncorrectArgsDelete},
		{"bad trailer", "delete k norely", ErrDeleteNoreplyTrailer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cerr := ParseCommand([]byte(tt.line))
			if cerr == nil || string(cerr.Message) != string(tt.want) {
				t.Errorf("got %v, want %q", cerr, tt.want)
			}
		})
	}
}

func TestParseCommandDeterminism(t *testing.T) {
	line := []byte("set capitalOfChina 14 2400 7")
	cmd1, err1 := ParseCommand(line)
	cmd2, err2 := ParseCommand(line)
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v %v", err1, err2)
	}
	if *cmd1.Set != *cmd2.Set {
		t.Errorf("ParseCommand is not deterministic: %+v != %+v", *cmd1.Set, *cmd2.Set)
	}
}
