package web

import (
	"embed"
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return "$" + d.StringFixed(2) },
	"date":  func(t time.Time) string { return t.Local().Format("Jan 2, 2006 3:04 PM") },
}

// Templates parses every embedded page template. Names are the file base names.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl"))
}

// Render answers with the named template, or with data as JSON when the client asks for it.
func Render(c *gin.Context, status int, name string, data any) {
	c.Negotiate(status, gin.Negotiate{
		Offered:  []string{binding.MIMEHTML, binding.MIMEJSON},
		HTMLName: name,
		Data:     data,
	})
}

// WantsJSON reports whether the client prefers a JSON answer over a page or redirect.
func WantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(binding.MIMEHTML, binding.MIMEJSON) == binding.MIMEJSON
}
