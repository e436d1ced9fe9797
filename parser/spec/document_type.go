package spec

// DocumentType is https://dom.spec.whatwg.org/#documenttype
type DocumentType struct {
	Name     string
	PublicID string
	SystemID string
}
