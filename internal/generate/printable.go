package generate

import "strings"

// PrintButtonLabel is the visible text of the injected print control.
const PrintButtonLabel = "Print / Save as PDF"

const printButtonCSS = `
.no-print {
  display: block;
}
.print-button {
  background-color: #4CAF50;
  border: none;
  color: white;
  padding: 10px 20px;
  text-align: center;
  text-decoration: none;
  display: inline-block;
  font-size: 16px;
  margin: 10px 2px;
  cursor: pointer;
  border-radius: 4px;
}
.print-instructions {
  margin-bottom: 10px;
  font-style: italic;
  color: #555;
}
@media print {
  .no-print {
    display: none;
  }
}
`

const printButtonHTML = `
<div class="no-print" style="text-align: center; margin: 20px 0;">
  <div class="print-instructions">Click the button below to print or save as PDF</div>
  <button class="print-button" onclick="window.print()">` + PrintButtonLabel + `</button>
</div>
`

// MakePrintable injects the print button and its CSS into an HTML document.
// The button goes right after <body> when present, after </style> otherwise,
// and is prepended as a last resort; the CSS merges into an existing <style>
// block or is prepended as its own.
func MakePrintable(html string) string {
	switch {
	case strings.Contains(html, "<body>"):
		html = strings.Replace(html, "<body>", "<body>\n"+printButtonHTML, 1)
	case strings.Contains(html, "</style>"):
		html = strings.Replace(html, "</style>", "</style>\n"+printButtonHTML, 1)
	default:
		html = printButtonHTML + "\n" + html
	}

	if strings.Contains(html, "</style>") {
		html = strings.Replace(html, "</style>", printButtonCSS+"\n</style>", 1)
	} else {
		html = "<style>" + printButtonCSS + "</style>\n" + html
	}

	return html
}
