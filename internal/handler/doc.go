// Package handler implements the HTTP admin surface of salesdesk.
//
// Forms are submitted as raw form values and go through the same view
// controllers a desktop client would use: parse, save, then notify. List
// endpoints serve the ListView collections, which the notify registry keeps
// fresh after every confirmed write.
//
// # Errors
//
// Errors are returned as JSON {error, details, fields} with the status
// derived from the error type:
//
//   - validation: 422, fields carries the field → message map
//   - integrity: 409
//   - persistence: 500
//   - missing entity: 404, malformed id: 400
//
// # Server-Sent Events
//
// GET /events streams {"type":"department_changed"} and
// {"type":"seller_changed"} so browser lists know to re-query.
package handler
