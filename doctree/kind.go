package doctree

// Kind identifies what a tree node represents. The set is closed: tags which
// are not listed here load as KindUnknown and keep their original tag name.
type Kind int

const (
	KindUnknown Kind = iota
	KindDocument
	KindStartOfFile
	KindSection
	KindTitle
	KindSubtitle
	KindParagraph
	KindText
	KindInline
	KindEmphasis
	KindStrong
	KindLiteral
	KindSuperscript
	KindSubscript
	KindTitleReference
	KindAbbreviation
	KindAcronym
	KindProblematic
	KindReference
	KindPendingXref
	KindTarget
	KindFootnote
	KindFootnoteReference
	KindLabel
	KindCitation
	KindCitationReference
	KindBulletList
	KindEnumeratedList
	KindListItem
	KindDefinitionList
	KindDefinitionListItem
	KindTerm
	KindDefinition
	KindBlockQuote
	KindLiteralBlock
	KindLineBlock
	KindLine
	KindTable
	KindTGroup
	KindColSpec
	KindTHead
	KindTBody
	KindRow
	KindEntry
	KindFigure
	KindImage
	KindCaption
	KindLegend
	KindAdmonition
	KindTopic
	KindSidebar
	KindSeeAlso
	KindHighlightLang
	KindCompound
	KindComment
	KindDecoration
	KindTransition
	KindDocInfo
	KindAuthor
	KindAddress
	KindIndex
	KindRaw
	KindToctree
	KindSystemMessage
	KindSubstitutionDefinition
	KindAttribution
	KindRubric
	KindContainer
	KindLiteralStrong
	KindLiteralEmphasis
	KindFieldList
	KindField
	KindFieldName
	KindFieldBody
	// KindCollectedFootnote never comes from input, translator creates it
	// when footnote text is rendered at the point of reference.
	KindCollectedFootnote

	// KindCount is the number of kinds, usable as array size.
	KindCount
)

type kindInfo struct {
	tag string
	// textual elements keep whitespace-only character data
	textual bool
}

var kinds = [KindCount]kindInfo{
	KindUnknown:            {tag: "unknown"},
	KindDocument:           {tag: "document"},
	KindStartOfFile:        {tag: "start_of_file"},
	KindSection:            {tag: "section"},
	KindTitle:              {tag: "title", textual: true},
	KindSubtitle:           {tag: "subtitle", textual: true},
	KindParagraph:          {tag: "paragraph", textual: true},
	KindText:               {tag: "#text", textual: true},
	KindInline:             {tag: "inline", textual: true},
	KindEmphasis:           {tag: "emphasis", textual: true},
	KindStrong:             {tag: "strong", textual: true},
	KindLiteral:            {tag: "literal", textual: true},
	KindSuperscript:        {tag: "superscript", textual: true},
	KindSubscript:          {tag: "subscript", textual: true},
	KindTitleReference:     {tag: "title_reference", textual: true},
	KindAbbreviation:       {tag: "abbreviation", textual: true},
	KindAcronym:            {tag: "acronym", textual: true},
	KindProblematic:        {tag: "problematic", textual: true},
	KindReference:          {tag: "reference", textual: true},
	KindPendingXref:        {tag: "pending_xref", textual: true},
	KindTarget:             {tag: "target", textual: true},
	KindFootnote:           {tag: "footnote"},
	KindFootnoteReference:  {tag: "footnote_reference", textual: true},
	KindLabel:              {tag: "label", textual: true},
	KindCitation:           {tag: "citation"},
	KindCitationReference:  {tag: "citation_reference", textual: true},
	KindBulletList:         {tag: "bullet_list"},
	KindEnumeratedList:     {tag: "enumerated_list"},
	KindListItem:           {tag: "list_item"},
	KindDefinitionList:     {tag: "definition_list"},
	KindDefinitionListItem: {tag: "definition_list_item"},
	KindTerm:               {tag: "term", textual: true},
	KindDefinition:         {tag: "definition"},
	KindBlockQuote:         {tag: "block_quote"},
	KindLiteralBlock:       {tag: "literal_block", textual: true},
	KindLineBlock:          {tag: "line_block"},
	KindLine:               {tag: "line", textual: true},
	KindTable:              {tag: "table"},
	KindTGroup:             {tag: "tgroup"},
	KindColSpec:            {tag: "colspec"},
	KindTHead:              {tag: "thead"},
	KindTBody:              {tag: "tbody"},
	KindRow:                {tag: "row"},
	KindEntry:              {tag: "entry"},
	KindFigure:             {tag: "figure"},
	KindImage:              {tag: "image"},
	KindCaption:            {tag: "caption", textual: true},
	KindLegend:             {tag: "legend"},
	KindAdmonition:         {tag: "admonition"},
	KindTopic:              {tag: "topic"},
	KindSidebar:            {tag: "sidebar"},
	KindSeeAlso:            {tag: "seealso"},
	KindHighlightLang:      {tag: "highlightlang"},
	KindCompound:           {tag: "compound"},
	KindComment:            {tag: "comment", textual: true},
	KindDecoration:         {tag: "decoration"},
	KindTransition:         {tag: "transition"},
	KindDocInfo:            {tag: "docinfo"},
	KindAuthor:             {tag: "author", textual: true},
	KindAddress:            {tag: "address", textual: true},
	KindIndex:              {tag: "index"},
	KindRaw:                {tag: "raw", textual: true},
	KindToctree:            {tag: "toctree"},
	KindSystemMessage:      {tag: "system_message"},
	KindCollectedFootnote:  {tag: "collected_footnote"},

	KindSubstitutionDefinition: {tag: "substitution_definition", textual: true},
	KindAttribution:            {tag: "attribution", textual: true},
	KindRubric:                 {tag: "rubric", textual: true},
	KindContainer:              {tag: "container"},
	KindLiteralStrong:          {tag: "literal_strong", textual: true},
	KindLiteralEmphasis:        {tag: "literal_emphasis", textual: true},
	KindFieldList:              {tag: "field_list"},
	KindField:                  {tag: "field"},
	KindFieldName:              {tag: "field_name", textual: true},
	KindFieldBody:              {tag: "field_body"},
}

// Specific admonitions are all represented by KindAdmonition, node tag keeps
// the original name.
var admonitionTags = map[string]bool{
	"attention": true,
	"caution":   true,
	"danger":    true,
	"error":     true,
	"hint":      true,
	"important": true,
	"note":      true,
	"tip":       true,
	"todo_node": true,
	"warning":   true,
}

var tagToKind = func() map[string]Kind {
	m := make(map[string]Kind, len(kinds)+len(admonitionTags))
	for k := KindUnknown + 1; k < KindCount; k++ {
		m[kinds[k].tag] = k
	}
	for tag := range admonitionTags {
		m[tag] = KindAdmonition
	}
	return m
}()

// String returns canonical tag name of the kind.
func (k Kind) String() string {
	if k < 0 || k >= KindCount {
		return "invalid"
	}
	return kinds[k].tag
}

// KindOf maps an element tag to its kind.
func KindOf(tag string) Kind {
	if k, ok := tagToKind[tag]; ok {
		return k
	}
	return KindUnknown
}

// IsSpecificAdmonition reports whether tag names one of the predefined
// admonitions (note, warning, etc.) rather than the generic one.
func IsSpecificAdmonition(tag string) bool {
	return admonitionTags[tag]
}

func (k Kind) textual() bool {
	return k >= 0 && k < KindCount && kinds[k].textual
}
