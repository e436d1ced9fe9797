package spec

import "unicode/utf8"

// CharacterData is https://dom.spec.whatwg.org/#characterdata
type CharacterData struct {
	Data string
}

// Len counts code points rather than UTF-16 units.
func (c *CharacterData) Len() int {
	return utf8.RuneCountInString(c.Data)
}

func (c *CharacterData) AppendData(data string) {
	c.Data += data
}
