// Package bytebuf reads and writes the binary layout used by UI packages.
//
// A Buffer is a random-access cursor over an immutable byte window. Besides
// primitive reads it supports an indexed-block seek: a record starts with a
// small table of offsets to optional blocks, and Seek jumps straight to one
// of them without parsing the blocks in front of it.
//
//	buf := bytebuf.New(data, strings)
//	if buf.Seek(0, 2) {
//	    count := buf.ReadUshort()
//	    ...
//	}
//	if err := buf.Err(); err != nil {
//	    return err
//	}
//
// Writer produces the same layout and is used by the pack package and tests.
package bytebuf
