package printing

import "time"

// PDFResponse is a rendered report. Content is set when the PDF is returned
// inline. Key and URL are set when it was archived.
type PDFResponse struct {
	Filename  string    `json:"filename"`
	Pages     int       `json:"pages"`
	Content   []byte    `json:"-"`
	Key       string    `json:"key,omitempty"`
	URL       string    `json:"url,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Archived reports whether the PDF went to the archive
func (r *PDFResponse) Archived() bool {
	return r.URL != ""
}
