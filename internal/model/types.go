package model

// CollectionType discriminates the collection subtypes. Each type
// supplies a default field template and an entry similarity heuristic;
// nothing else about the storage shape varies.
//
// The numeric values are part of the persisted XML format.
type CollectionType int

const (
	TypeBase      CollectionType = 0
	TypeBook      CollectionType = 1
	TypeVideo     CollectionType = 2
	TypeAlbum     CollectionType = 3
	TypeBibtex    CollectionType = 4
	TypeComicBook CollectionType = 5
	TypeWine      CollectionType = 6
	TypeCoin      CollectionType = 7
	TypeStamp     CollectionType = 8
	TypeCard      CollectionType = 9
	TypeGame      CollectionType = 10
	TypeFile      CollectionType = 11
	TypeBoardGame CollectionType = 12
)

var collTypeNames = map[CollectionType]string{
	TypeBase:      "base",
	TypeBook:      "book",
	TypeVideo:     "video",
	TypeAlbum:     "album",
	TypeBibtex:    "bibtex",
	TypeComicBook: "comicbook",
	TypeWine:      "wine",
	TypeCoin:      "coin",
	TypeStamp:     "stamp",
	TypeCard:      "card",
	TypeGame:      "game",
	TypeFile:      "file",
	TypeBoardGame: "boardgame",
}

// String returns the lowercase type name used in the CLI.
func (t CollectionType) String() string {
	if name, ok := collTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseCollectionType resolves a lowercase type name. The boolean is
// false for unknown names.
func ParseCollectionType(name string) (CollectionType, bool) {
	for t, n := range collTypeNames {
		if n == name {
			return t, true
		}
	}
	return TypeBase, false
}

// CollectionTypes lists every type in numeric order.
func CollectionTypes() []CollectionType {
	return []CollectionType{
		TypeBase, TypeBook, TypeVideo, TypeAlbum, TypeBibtex, TypeComicBook,
		TypeWine, TypeCoin, TypeStamp, TypeCard, TypeGame, TypeFile, TypeBoardGame,
	}
}
