package models

import "item-catalog/core/utils"

// IdentityKey is the normalised (name, keywords, type) triple that identifies one logical item.
type IdentityKey struct {
	Name     string
	Keywords string
	Type     string
}

// NewIdentityKey lowercases and trims each part of the triple.
func NewIdentityKey(name, keywords, itemType string) IdentityKey {
	return IdentityKey{
		Name:     utils.Normalize(name),
		Keywords: utils.Normalize(keywords),
		Type:     utils.Normalize(itemType),
	}
}

func (k IdentityKey) String() string {
	return k.Name + "|" + k.Keywords + "|" + k.Type
}
