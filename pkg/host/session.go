package host

// Session is an attached document together with the services of the
// application that owns it.
type Session struct {
	Document  Document
	Factory   Factory
	Projector Projector
	Units     UnitConverter
	Sources   DataSources
}

// NewSession attaches to app's active document.
func NewSession(app Application) (*Session, error) {
	doc, err := app.Document()
	if err != nil {
		return nil, err
	}
	return &Session{
		Document:  doc,
		Factory:   app.Factory(),
		Projector: app.Projector(),
		Units:     app.Units(),
		Sources:   app.DataSources(),
	}, nil
}

// FocusMap returns the document's focus map, or nil.
func (s *Session) FocusMap() Map {
	if s == nil || s.Document == nil {
		return nil
	}
	return s.Document.FocusMap()
}
