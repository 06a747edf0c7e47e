package document

// Page represents one page of the source document together with its
// current edit state. Identity is the 1-based page number in the source
// file and never changes; only rotation and removal state mutate.
type Page struct {
	sourceIndex int
	rotation    int
	removed     bool
}

func newPage(sourceIndex int) *Page {
	return &Page{sourceIndex: sourceIndex}
}

// SourceIndex returns the page's 1-based position in the source document.
func (p *Page) SourceIndex() int {
	return p.sourceIndex
}

// Rotation returns the cumulative rotation in degrees: 0, 90, 180 or 270.
func (p *Page) Rotation() int {
	return p.rotation
}

// IsRemoved reports whether the page is logically excluded from the
// visible sequence. Removed pages stay referenced by the command that
// removed them so the removal can be reversed.
func (p *Page) IsRemoved() bool {
	return p.removed
}

func (p *Page) rotate(delta int) {
	p.rotation = ((p.rotation+delta)%360 + 360) % 360
}

func (p *Page) markRemoved() {
	p.removed = true
}

func (p *Page) markRestored() {
	p.removed = false
}
