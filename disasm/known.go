package disasm

import (
	"crypto/md5"
	"fmt"

	"go.creack.net/gamebook/asm"
	"go.creack.net/gamebook/asm/symfile"
	"go.creack.net/gamebook/assets"
)

func md5sum(data []byte) string {
	h := md5.New()
	h.Write(data)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// KnownSymbols looks for the bundled story that compiles to data and
// returns its symbol map, nil if none matches.
func KnownSymbols(data []byte) (*symfile.Map, error) {
	search := md5sum(data)
	names, err := assets.Stories()
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	for _, name := range names {
		src, err := assets.Story(name)
		if err != nil {
			return nil, err
		}
		buf, pr, err := asm.Compile(name, src, asm.Options{})
		if err != nil {
			// Should not happen, bundled stories are tested.
			return nil, fmt.Errorf("failed to compile bundled %q: %w", name, err)
		}
		if md5sum(buf) == search {
			return symfile.FromProgram(pr), nil
		}
	}
	return nil, nil
}
