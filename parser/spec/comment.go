package spec

// Comment is https://dom.spec.whatwg.org/#interface-comment
type Comment struct {
	*CharacterData
}

// NewComment returns a comment with its Data section filled.
func NewComment(data string) *Comment {
	return &Comment{
		CharacterData: &CharacterData{
			Data: data,
		},
	}
}
