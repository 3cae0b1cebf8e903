package models

import (
	"gorm.io/datatypes"
)

// JSONMap stores a flat answers object as one JSON column. datatypes maps it
// to the native JSON type of each dialect (NVARCHAR(MAX) on sqlserver, which
// has no json type).
type JSONMap = datatypes.JSONMap
