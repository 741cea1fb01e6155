// internal/appstore/markets.go
package appstore

import (
	"strings"

	commonerrors "aso-keyword-service/internal/common/errors"
)

// storeFronts maps two-letter country codes to App Store store-front IDs.
var storeFronts = map[string]int{
	"ar": 143505,
	"au": 143460,
	"at": 143445,
	"be": 143446,
	"br": 143503,
	"ca": 143455,
	"ch": 143459,
	"cl": 143483,
	"cn": 143465,
	"co": 143501,
	"cz": 143489,
	"de": 143443,
	"dk": 143458,
	"es": 143454,
	"fi": 143447,
	"fr": 143442,
	"gb": 143444,
	"gr": 143448,
	"hk": 143463,
	"hu": 143482,
	"id": 143476,
	"ie": 143449,
	"il": 143491,
	"in": 143467,
	"it": 143450,
	"jp": 143462,
	"kr": 143466,
	"mx": 143468,
	"my": 143473,
	"nl": 143452,
	"no": 143457,
	"nz": 143461,
	"ph": 143474,
	"pl": 143478,
	"pt": 143453,
	"ro": 143487,
	"ru": 143469,
	"sa": 143479,
	"se": 143456,
	"sg": 143464,
	"th": 143475,
	"tr": 143480,
	"tw": 143470,
	"ua": 143492,
	"us": 143441,
	"vn": 143471,
	"za": 143472,
}

// StoreFrontID returns the store-front ID for a two-letter country code.
func StoreFrontID(country string) (int, error) {
	if id, ok := storeFronts[strings.ToLower(country)]; ok {
		return id, nil
	}
	return 0, commonerrors.NewCountryNotFoundError(country)
}
