// Package api provides the Alpaca trading API client used by the exporter.
//
// REST endpoints:
//   - Live: https://api.alpaca.markets
//   - Paper: https://paper-api.alpaca.markets
//
// Authentication uses the APCA-API-KEY-ID and APCA-API-SECRET-KEY headers.
// Responses are kept as raw JSON (maps and slices) because the exporter
// writes whatever the API returns; no endpoint schema is assumed.
package api
