package models

import "errors"

var ErrUnknownEntity = errors.New("unknown entity")

// Entity names a collection in URLs, export files and import headers.
type Entity string

const (
	EntityNotices        Entity = "notices"
	EntityEquipment      Entity = "equipment"
	EntityParts          Entity = "parts"
	EntityInspections    Entity = "inspections"
	EntityOperations     Entity = "operations"
	EntityImportFailures Entity = "import-errors"
)

var entities = []Entity{
	EntityNotices, EntityEquipment, EntityParts, EntityInspections, EntityOperations, EntityImportFailures,
}

func Entities() []Entity {
	out := make([]Entity, len(entities))
	copy(out, entities)
	return out
}

func ParseEntity(s string) (Entity, error) {
	for _, e := range entities {
		if string(e) == s {
			return e, nil
		}
	}
	return "", ErrUnknownEntity
}
