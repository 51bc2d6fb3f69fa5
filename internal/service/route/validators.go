package route

import "strings"

const maxListLimit = 500

func isValidID(id int64) bool {
	return id > 0
}

func normalizePlate(plate string) (string, bool) {
	plate = strings.TrimSpace(plate)
	return plate, plate != ""
}

func isValidLimit(limit uint64) bool {
	return limit <= maxListLimit
}
