// Package response defines the JSON envelope every API endpoint returns.
// The reviewctl client decodes this exact shape; the field names are part
// of the wire contract and must not change.
package response

// Response is the envelope for both success and error bodies. Status is
// "success" or "error"; StatusCode repeats the HTTP status so consumers
// reading the body off a websocket or a log line still see it.
type Response struct {
	Status     string `json:"status"`
	StatusCode int    `json:"status_code"`
	Data       any    `json:"data,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Success wraps data in a success envelope.
func Success(statusCode int, data any) Response {
	return Response{Status: "success", StatusCode: statusCode, Data: data}
}

// Error wraps a message in an error envelope. Data is left empty.
func Error(statusCode int, msg string) Response {
	return Response{Status: "error", StatusCode: statusCode, Error: msg}
}
