package domain

// BlockKind is the type of a styled-document block.
type BlockKind string

const (
	BlockHeading   BlockKind = "heading"
	BlockParagraph BlockKind = "paragraph"
	BlockBullet    BlockKind = "bullet"
	BlockEmphasis  BlockKind = "emphasis"
	BlockSpacer    BlockKind = "spacer"
	BlockPageBreak BlockKind = "page_break"
)

// RunStyle is the inline style of a text run.
type RunStyle string

const (
	StyleRegular RunStyle = ""
	StyleBold    RunStyle = "B"
	StyleItalic  RunStyle = "I"
)

// BulletGlyph prefixes bullet items.
const BulletGlyph = "•"

// TextRun is a contiguous piece of text in a single inline style.
type TextRun struct {
	Text  string
	Style RunStyle
}

// Block is one element of a styled document. Level is 1-3 for headings, with
// 1 the title style.
type Block struct {
	Kind  BlockKind
	Level int
	Runs  []TextRun
}

// Text concatenates the runs of the block.
func (b Block) Text() string {
	var s string
	for _, r := range b.Runs {
		s += r.Text
	}
	return s
}

// StyledDocument is the ordered, immutable block sequence parsed from markup.
type StyledDocument struct {
	blocks []Block
}

// NewStyledDocument copies blocks into a new document.
func NewStyledDocument(blocks []Block) StyledDocument {
	out := make([]Block, len(blocks))
	copy(out, blocks)
	return StyledDocument{blocks: out}
}

// Blocks returns a copy of the block sequence.
func (d StyledDocument) Blocks() []Block {
	out := make([]Block, len(d.blocks))
	copy(out, d.blocks)
	return out
}

// Len returns the number of blocks.
func (d StyledDocument) Len() int { return len(d.blocks) }

// WithTrailingPageBreak returns a copy ending in a page break.
func (d StyledDocument) WithTrailingPageBreak() StyledDocument {
	blocks := d.Blocks()
	blocks = append(blocks, Block{Kind: BlockPageBreak})
	return StyledDocument{blocks: blocks}
}
