package extract

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/ledongthuc/pdf"
)

const defaultMarginPoints = 72 // one inch

// StyleAttributes describes layout hints probed from a reference PDF.
// They are informational only and are not applied to generated output.
type StyleAttributes struct {
	Fonts   []string `json:"fonts,omitempty"`
	Width   float64  `json:"width,omitempty"`
	Height  float64  `json:"height,omitempty"`
	Margins Margins  `json:"margins"`
}

// Margins holds page margins in points.
type Margins struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Style probes font names and page geometry from PDF bytes.
func Style(data []byte) (StyleAttributes, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return StyleAttributes{}, fmt.Errorf("open pdf: %w", err)
	}
	if reader.NumPage() == 0 {
		return StyleAttributes{}, fmt.Errorf("pdf has no pages")
	}

	attrs := StyleAttributes{
		Margins: Margins{
			Left:   defaultMarginPoints,
			Right:  defaultMarginPoints,
			Top:    defaultMarginPoints,
			Bottom: defaultMarginPoints,
		},
	}

	seen := map[string]bool{}
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		for _, name := range page.Fonts() {
			base := page.Font(name).BaseFont()
			if base == "" {
				base = name
			}
			if !seen[base] {
				seen[base] = true
				attrs.Fonts = append(attrs.Fonts, base)
			}
		}
	}
	sort.Strings(attrs.Fonts)

	first := reader.Page(1)
	if box := first.V.Key("MediaBox"); box.Len() == 4 {
		attrs.Width = box.Index(2).Float64() - box.Index(0).Float64()
		attrs.Height = box.Index(3).Float64() - box.Index(1).Float64()
	}

	return attrs, nil
}
