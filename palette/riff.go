package palette

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"golang.org/x/image/riff"
)

/*
typedef struct tagLOGPALETTE {
  WORD         palVersion;
  WORD         palNumEntries;
  PALETTEENTRY palPalEntry[1];
} LOGPALETTE;

typedef struct tagPALETTEENTRY {
  BYTE peRed;
  BYTE peGreen;
  BYTE peBlue;
  BYTE peFlags;
} PALETTEENTRY;
*/

var (
	riffType = riff.FourCC{'R', 'I', 'F', 'F'}
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}
)

// ReadPALFile loads the first palette of a RIFF PAL file.
func ReadPALFile(name string) (Palette, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open palette file %q: %w", name, err)
	}
	defer f.Close()

	pals, err := ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("could not load palette file %q: %w", name, err)
	}
	if len(pals) == 0 || len(pals[0]) == 0 {
		return nil, fmt.Errorf("no colors in palette file %q", name)
	}

	return pals[0], nil
}

// WritePALFile saves one palette as a RIFF PAL file.
func WritePALFile(name string, p Palette) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("could not create palette file %q: %w", name, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("could not close palette file %q: %w", name, closeErr)
		}
	}()

	if _, err = WriteTo(f, []Palette{p}); err != nil {
		return fmt.Errorf("could not save palette file %q: %w", name, err)
	}
	return nil
}

// ReadFrom reads every palette chunk of a RIFF PAL stream.
func ReadFrom(r io.Reader) ([]Palette, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open RIFF stream: %w", err)
	} else if formType != palType {
		return nil, fmt.Errorf("unsupported RIFF content type: %s", string(formType[:]))
	}

	return readPalettes(rd, string(formType[:]))
}

func readPalettes(r *riff.Reader, ident string) ([]Palette, error) {
	var res []Palette

	for {
		id, size, data, err := r.Next()
		if err != nil {
			if err == io.EOF {
				break
			}

			return res, fmt.Errorf("could not read chunk %q#%d: %w", ident, len(res), err)
		}

		if id == riff.LIST {
			listType, list, lerr := riff.NewListReader(size, data)
			if lerr != nil {
				return res, fmt.Errorf("could not read list from chunk %q#%d: %w", ident, len(res), lerr)
			} else if listType != palType {
				return nil, fmt.Errorf("chunk %q#%d unsupported type: %s", ident, len(res), string(listType[:]))
			}

			listRes, lerr := readPalettes(list, fmt.Sprintf("%s%d.%s", ident, len(res), listType[:]))
			res = append(res, listRes...)
			if lerr != nil {
				return res, lerr
			}
			continue
		} else if id != dataType {
			return res, fmt.Errorf("unsupported chunk type in %q#%d: %s", ident, len(res), id)
		}

		pal, err := readPalette(data, fmt.Sprintf("%s%d", ident, len(res)))
		if err != nil {
			return res, err
		}

		res = append(res, pal)
	}

	return res, nil
}

func readPalette(r io.Reader, ident string) (Palette, error) {
	buf := make([]byte, 2)

	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("could not read version from chunk %s: %w", ident, err)
	}

	ver := binary.BigEndian.Uint16(buf)
	if ver != 3 {
		return nil, fmt.Errorf("unsupported palette version in chunk %s: %d", ident, ver)
	}

	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("could not read number of entries from chunk %s: %w", ident, err)
	}

	count := binary.LittleEndian.Uint16(buf)
	res := make(Palette, count)
	buf4 := make([]byte, 4)
	for i := range count {
		if _, err := io.ReadFull(r, buf4); err != nil {
			return res, fmt.Errorf("could not read color %d/%d from chunk %s: %w", i, count, ident, err)
		}

		res[i] = Color{R: buf4[0], G: buf4[1], B: buf4[2]}
	}

	return res, nil
}

// WriteTo writes palettes as one RIFF PAL document, one data chunk each.
func WriteTo(w io.Writer, pals []Palette) (int64, error) {
	n := 4
	for _, pal := range pals {
		n += 4 + 4 + 4 + len(pal)*4 // chunk id + chunk size + palVersion + palNumEntries + 4 bytes/color
	}

	if err := writeBytes(w, riffType[:]); err != nil {
		return 0, fmt.Errorf("could not write RIFF magic: %w", err)
	}

	if err := writeBytes(w, binary.LittleEndian.AppendUint32(nil, uint32(n))); err != nil {
		return 0, fmt.Errorf("could not write document size: %w", err)
	}

	if err := writeBytes(w, palType[:]); err != nil {
		return 0, fmt.Errorf("could not write content type: %w", err)
	}

	var count int64
	for i, pal := range pals {
		n, err := writePalette(w, pal)
		count += n
		if err != nil {
			return count, fmt.Errorf("could not write chunk %d: %w", i, err)
		}
	}

	return count, nil
}

func writePalette(w io.Writer, pal Palette) (int64, error) {
	if err := writeBytes(w, dataType[:]); err != nil {
		return 0, fmt.Errorf("could not write type: %w", err)
	}

	n := 4 + len(pal)*4
	if err := writeBytes(w, binary.LittleEndian.AppendUint32(nil, uint32(n))); err != nil {
		return 0, fmt.Errorf("could not write chunk size: %w", err)
	}

	if err := writeBytes(w, []byte{0, 0x03}); err != nil {
		return 0, fmt.Errorf("could not write palette version: %w", err)
	}

	if err := writeBytes(w, binary.LittleEndian.AppendUint16(nil, uint16(len(pal)))); err != nil {
		return 0, fmt.Errorf("could not write number of colors: %w", err)
	}

	for i, c := range pal {
		if err := writeBytes(w, []byte{c.R, c.G, c.B, 0x00}); err != nil {
			return int64(i), fmt.Errorf("could not write color %d/%d: %w", i, len(pal), err)
		}
	}

	return int64(len(pal)), nil
}

func writeBytes(w io.Writer, b []byte) error {
	n, err := w.Write(b)
	if err != nil {
		return err
	} else if n != len(b) {
		return fmt.Errorf("wrote only %d/%d bytes", n, len(b))
	}

	return nil
}
