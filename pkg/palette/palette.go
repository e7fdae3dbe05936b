// Package palette holds the fixed subject color palette and the date
// layout every caller of the document store is expected to use.
package palette

// Colors is the fixed set of subject colors, in picker order.
var Colors = [8]string{
	"#FF6B6B", // coral
	"#4ECDC4", // teal
	"#45B7D1", // sky
	"#96CEB4", // sage
	"#FFEAA7", // sand
	"#DDA0DD", // plum
	"#F78FB3", // rose
	"#778BEB", // periwinkle
}

// DefaultColor is assigned to subjects created without an explicit
// color choice (e.g. implicitly through task insertion).
const DefaultColor = "#4ECDC4"

// DateLayout is the due-date format stored in task records,
// in time.Format reference notation.
const DateLayout = "2006-01-02"

// Contains reports whether c is one of the palette colors.
func Contains(c string) bool {
	for _, p := range Colors {
		if p == c {
			return true
		}
	}
	return false
}
