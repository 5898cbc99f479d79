package rstfmt

// Options controls the output style of the writer. The zero value is not
// useful; start from DefaultOptions or pass Option funcs to New or Render.
type Options struct {
	// WrapLength is the maximum text width in characters.
	WrapLength int

	// IndentUnit is the number of IndentChar per indentation level.
	IndentUnit int

	// IndentChar is the character used for indentation, space or tab.
	IndentChar rune

	// TitleChars are the adornment characters per heading level, index 0
	// for H1. Levels are mapped to characters greedily in first-seen order
	// and reused for same-level siblings.
	TitleChars []rune

	// TitleOverline marks heading levels that get an overline in addition
	// to the underline.
	TitleOverline []bool

	// BulletChars are the bullet characters per list nesting depth.
	BulletChars []rune

	// TransitionWidth is the number of dashes in a transition line.
	TransitionWidth int

	warn func(Warning)
}

// DefaultOptions returns the canonical output style: 79-column wrap,
// space indentation in units of two (three for enumerated list markers,
// derived from marker width), "# * = - ^ \"" title adornments with
// overlines on the first two levels, "*" bullets.
func DefaultOptions() Options {
	return Options{
		WrapLength:      79,
		IndentUnit:      2,
		IndentChar:      ' ',
		TitleChars:      []rune{'#', '*', '=', '-', '^', '"'},
		TitleOverline:   []bool{true, true, false, false, false, false},
		BulletChars:     []rune{'*', '*', '*', '*', '*', '*'},
		TransitionWidth: 4,
	}
}

// Option configures the writer.
type Option func(*Options)

// WithWrapLength sets the maximum output width.
func WithWrapLength(width int) Option {
	return func(o *Options) {
		if width > 0 {
			o.WrapLength = width
		}
	}
}

// WithIndentUnit sets the indentation unit size.
func WithIndentUnit(size int) Option {
	return func(o *Options) {
		if size > 0 {
			o.IndentUnit = size
		}
	}
}

// WithTitleChars sets the section adornment character order.
func WithTitleChars(chars []rune) Option {
	return func(o *Options) {
		if len(chars) > 0 {
			o.TitleChars = chars
		}
	}
}

// WithBulletChars sets the bullet characters per nesting depth.
func WithBulletChars(chars []rune) Option {
	return func(o *Options) {
		if len(chars) > 0 {
			o.BulletChars = chars
		}
	}
}

// WithWarningHandler registers a callback for non-fatal rendering warnings
// such as unavoidable width overflows. A nil handler drops warnings.
func WithWarningHandler(fn func(Warning)) Option {
	return func(o *Options) {
		o.warn = fn
	}
}

func (o Options) titleChar(level int) rune {
	if level < len(o.TitleChars) {
		return o.TitleChars[level]
	}
	// Past the configured depth, reuse the deepest configured character.
	return o.TitleChars[len(o.TitleChars)-1]
}

func (o Options) titleOverline(level int) bool {
	return level < len(o.TitleOverline) && o.TitleOverline[level]
}

func (o Options) bulletChar(depth int) rune {
	if depth < len(o.BulletChars) {
		return o.BulletChars[depth]
	}
	return o.BulletChars[len(o.BulletChars)-1]
}
