package config

// Top level sectioning unit of a document. Document level "default" inherits
// project wide value, project wide "default" means chapter.
// ENUM(default, part, chapter, section)
type Sectioning int

// Or returns s unless it is default, in which case def is returned.
func (s Sectioning) Or(def Sectioning) Sectioning {
	if s == SectioningDefault {
		return def
	}
	return s
}

// Name returns LaTeX sectioning command name.
func (s Sectioning) Name() string {
	if s == SectioningDefault {
		return SectioningChapter.String()
	}
	return s.String()
}
