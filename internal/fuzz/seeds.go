package fuzztests

import "testing"

const maxFuzzInput = 1 << 16 // 64 KiB

var corpusSeeds = []string{
	"",
	"a = 1 + 2 * 3",
	"a = 1.5 b = a / 2",
	"if 2 > 1 say(1) elif 1 say(2) else say(3) end",
	"while 1 break end",
	"for i = 0; i < 10; i = i + 1 say(i) end",
	"for ; ; end",
	"def f(a, b) return a + b end x = f(1, 2)",
	"def g(s) return s end say(g(\"hi\"))",
	"bitfield Flags lo:4 hi:4 end f = Flags(255) g = f.hi",
	"enum Mode idle = 1 busy end m = busy",
	"a = 0x1f << 2 | ~3",
	"x = self.hp y = self->age",
	"u = query UNIT [self] MIN [1] where [1]",
	"`raw code;` say(1)",
	"a = 1 +",
	"def f( end",
	"if 1",
	"\"unterminated",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range corpusSeeds {
		f.Add([]byte(s))
	}
}

func clip(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
