package mock

import "github.com/fwojciec/chatextract"

var (
	_ chatextract.TextSource      = (*TextSource)(nil)
	_ chatextract.Converter       = (*Converter)(nil)
	_ chatextract.ServiceDetector = (*ServiceDetector)(nil)
)

// TextSource is a mock implementation of chatextract.TextSource.
type TextSource struct {
	TextFn func(html string) (string, error)
}

func (s *TextSource) Text(html string) (string, error) {
	return s.TextFn(html)
}

// Converter is a mock implementation of chatextract.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

// ServiceDetector is a mock implementation of
// chatextract.ServiceDetector.
type ServiceDetector struct {
	DetectFn func(html string) chatextract.Service
}

func (d *ServiceDetector) Detect(html string) chatextract.Service {
	return d.DetectFn(html)
}
