// SPDX-License-Identifier: MIT

package mask

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

// gzipMagic is the two-byte header of a gzip member.
var gzipMagic = [2]byte{0x1f, 0x8b}

// openInput opens a file for reading and transparently decompresses it when
// it starts with the gzip magic bytes. The returned closer releases both the
// decompressor and the file.
func openInput(path string) (io.Reader, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("mask: open %s: %w", path, err)
	}
	r, closeFn, err := maybeGunzip(f)
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("mask: read %s: %w", path, err)
	}

	return r, func() error {
		cerr := closeFn()
		if ferr := f.Close(); cerr == nil {
			cerr = ferr
		}
		return cerr
	}, nil
}

// maybeGunzip wraps r in a gzip reader when its first bytes are the gzip magic.
func maybeGunzip(r io.Reader) (io.Reader, func() error, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(2)
	if err != nil && err != io.EOF {
		return nil, nil, err
	}
	if len(head) == 2 && head[0] == gzipMagic[0] && head[1] == gzipMagic[1] {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, nil, err
		}
		return zr, zr.Close, nil
	}

	return br, func() error { return nil }, nil
}
