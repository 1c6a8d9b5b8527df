package data

import (
	_ "embed"
)

//go:embed seed/product_categories.json
var ProductCategoriesJSON []byte

//go:embed seed/raw_materials.json
var RawMaterialsJSON []byte
