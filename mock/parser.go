package mock

import "github.com/otalvaro/escrutinio"

var _ escrutinio.RecordParser = (*RecordParser)(nil)

// RecordParser is a mock implementation of escrutinio.RecordParser.
type RecordParser struct {
	ParseFn func(lines []string) (*escrutinio.BallotRecord, escrutinio.Warnings)
}

func (p *RecordParser) Parse(lines []string) (*escrutinio.BallotRecord, escrutinio.Warnings) {
	return p.ParseFn(lines)
}

var _ escrutinio.ParserRegistry = (*ParserRegistry)(nil)

// ParserRegistry is a mock implementation of escrutinio.ParserRegistry.
type ParserRegistry struct {
	GetFn      func(dt escrutinio.DocumentType) escrutinio.RecordParser
	RegisterFn func(dt escrutinio.DocumentType, p escrutinio.RecordParser)
	ListFn     func() []escrutinio.DocumentType
}

func (r *ParserRegistry) Get(dt escrutinio.DocumentType) escrutinio.RecordParser {
	return r.GetFn(dt)
}

func (r *ParserRegistry) Register(dt escrutinio.DocumentType, p escrutinio.RecordParser) {
	r.RegisterFn(dt, p)
}

func (r *ParserRegistry) List() []escrutinio.DocumentType {
	return r.ListFn()
}
