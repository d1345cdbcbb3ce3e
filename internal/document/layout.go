package document

// FontStyle follows the fpdf style string.
type FontStyle string

const (
	StyleNormal FontStyle = ""
	StyleBold   FontStyle = "B"
)

// Align anchors a text op on its X coordinate.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

type Color struct {
	R, G, B int
}

type OpKind int

const (
	OpText OpKind = iota
	OpRoundedRect
)

// Op is one drawing instruction. Inside a Block, Y is relative to the
// block top; inside a Page it is absolute. Text Y is the baseline.
type Op struct {
	Kind  OpKind
	X, Y  float64
	Text  string
	Size  float64
	Style FontStyle
	Align Align
	Color Color

	W, H, Radius float64
}

// Block is the unit of the page-break check. Required is the vertical
// space that must remain below the cursor for the block to stay on the
// current page; Advance moves the cursor once the block is placed.
type Block struct {
	Required float64
	Advance  float64
	Ops      []Op
}

// Page holds absolutely positioned ops for one page.
type Page struct {
	Number int
	Ops    []Op
}

// Paginate places blocks top to bottom. A block that would push the
// cursor past MaxY starts a new page and is placed at ContentTop. A block
// that already starts at ContentTop is never moved, so an oversized block
// cannot produce an empty page.
func Paginate(blocks []Block) []Page {
	pages := []Page{{Number: 1}}
	y := ContentTop

	for _, b := range blocks {
		if y+b.Required > MaxY && y > ContentTop {
			pages = append(pages, Page{Number: len(pages) + 1})
			y = ContentTop
		}
		cur := &pages[len(pages)-1]
		for _, op := range b.Ops {
			op.Y += y
			cur.Ops = append(cur.Ops, op)
		}
		y += b.Advance
	}

	return pages
}

func text(x, y float64, s string, size float64, style FontStyle) Op {
	return Op{Kind: OpText, X: x, Y: y, Text: s, Size: size, Style: style, Color: black}
}

func centered(y float64, s string, size float64, c Color) Op {
	return Op{Kind: OpText, X: CenterX, Y: y, Text: s, Size: size, Align: AlignCenter, Color: c}
}

func panel(y, h float64, fill Color) Op {
	return Op{Kind: OpRoundedRect, X: MarginX, Y: y, W: ContentWidth, H: h, Radius: 3, Color: fill}
}

// paragraphBlocks turns wrapped lines into blocks whose height is known
// before the page-break check. Text taller than a fresh page is cut into
// page-sized chunks.
func paragraphBlocks(lines []string, size, lineHeight, reqPad, advPad float64) []Block {
	perPage := int((MaxY - ContentTop - reqPad) / lineHeight)
	if perPage < 1 {
		perPage = 1
	}

	var blocks []Block
	for start := 0; start < len(lines); start += perPage {
		end := start + perPage
		if end > len(lines) {
			end = len(lines)
		}
		chunk := lines[start:end]
		h := float64(len(chunk)) * lineHeight
		b := Block{Required: h + reqPad, Advance: h + advPad}
		for i, l := range chunk {
			b.Ops = append(b.Ops, text(MarginX, float64(i)*lineHeight, l, size, StyleNormal))
		}
		blocks = append(blocks, b)
	}
	return blocks
}
