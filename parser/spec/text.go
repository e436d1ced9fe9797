package spec

// https://dom.spec.whatwg.org/#text
type Text struct {
	*CharacterData
}

func NewText(data string) *Text {
	return &Text{
		CharacterData: &CharacterData{
			Data: data,
		}}
}
