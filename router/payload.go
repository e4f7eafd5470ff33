package router

import "strconv"

// Socket.io delivers JSON objects as map[string]interface{} with float64
// numbers. Clients are not consistent about sending ids as numbers or
// strings, so the extractors accept both.

func payload(args []interface{}) map[string]interface{} {
	if len(args) == 0 {
		return nil
	}
	data, _ := args[0].(map[string]interface{})
	return data
}

func payloadUint(data map[string]interface{}, key string) uint {
	switch value := data[key].(type) {
	case float64:
		if value < 0 {
			return 0
		}
		return uint(value)
	case string:
		id, _ := strconv.ParseUint(value, 10, 64)
		return uint(id)
	default:
		return 0
	}
}

func payloadString(data map[string]interface{}, key string) string {
	value, _ := data[key].(string)
	return value
}
