package assembly

// File represents a complete assembly description: one board statement
// and any number of use/connect statements, in any order.
type File struct {
	Statements []*Statement `parser:"@@*"`
}

// Statement is one line of an assembly file.
type Statement struct {
	Board   *BoardStmt   `parser:"  @@"`
	Use     *UseStmt     `parser:"| @@"`
	Connect *ConnectStmt `parser:"| @@"`
}

// BoardStmt declares the board outline.
// Example: board rect 100 60 thickness 3.0
type BoardStmt struct {
	Width     float64    `parser:"KwBoard KwRect @(Float | Integer)"`
	Height    float64    `parser:"@(Float | Integer)"`
	Thickness *float64   `parser:"(KwThickness @(Float | Integer))?"`
	Holes     []HoleSpec `parser:"@@*"`
}

// HoleSpec declares a circular mount feature on the board.
// Example: hole 3.0 @ 5 5
type HoleSpec struct {
	Diameter float64 `parser:"KwHole @(Float | Integer)"`
	X        float64 `parser:"At @(Float | Integer)"`
	Y        float64 `parser:"@(Float | Integer)"`
}

// UseStmt requests component instances.
// Example: use 3 led as indicators
type UseStmt struct {
	Quantity int    `parser:"KwUse @Integer"`
	Type     string `parser:"@Ident"`
	Role     string `parser:"(KwAs @Ident)?"`
}

// ConnectStmt declares an explicit connection between two pads.
// Example: connect led[0].1 to microcontroller[0].13 net GND
type ConnectStmt struct {
	From PadSpec `parser:"KwConnect @@"`
	To   PadSpec `parser:"KwTo @@"`
	Net  string  `parser:"(KwNet @Ident)?"`
}

// PadSpec addresses one pad of the n-th instance of a component type.
type PadSpec struct {
	Type     string `parser:"@Ident"`
	Instance int    `parser:"LBracket @Integer RBracket"`
	Pad      int    `parser:"Dot @Integer"`
}

// BoardStmtOf returns the file's board statement, or nil if absent.
func (f *File) BoardStmtOf() *BoardStmt {
	for _, s := range f.Statements {
		if s.Board != nil {
			return s.Board
		}
	}
	return nil
}

// UseStmts returns all component requests in declaration order.
func (f *File) UseStmts() []*UseStmt {
	var out []*UseStmt
	for _, s := range f.Statements {
		if s.Use != nil {
			out = append(out, s.Use)
		}
	}
	return out
}

// ConnectStmts returns all explicit connections in declaration order.
func (f *File) ConnectStmts() []*ConnectStmt {
	var out []*ConnectStmt
	for _, s := range f.Statements {
		if s.Connect != nil {
			out = append(out, s.Connect)
		}
	}
	return out
}
