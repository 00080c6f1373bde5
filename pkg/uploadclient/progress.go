package uploadclient

import "io"

// progressReader reports percent consumed as the HTTP transport reads the
// request body. The callback only fires when the integer percent changes.
type progressReader struct {
	r       io.Reader
	total   int64
	read    int64
	last    int
	onWrite func(percent int)
}

func newProgressReader(r io.Reader, total int64, onWrite func(percent int)) *progressReader {
	return &progressReader{r: r, total: total, last: -1, onWrite: onWrite}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		p.report()
	}
	if err == io.EOF {
		p.read = p.total
		p.report()
	}
	return n, err
}

func (p *progressReader) report() {
	if p.onWrite == nil || p.total <= 0 {
		return
	}
	percent := int(p.read * 100 / p.total)
	if percent > 100 {
		percent = 100
	}
	if percent != p.last {
		p.last = percent
		p.onWrite(percent)
	}
}
