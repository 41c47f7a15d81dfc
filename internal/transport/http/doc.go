// Package http implements the HTTP handlers of the dashboard API. Handlers
// stay thin: they parse and validate the request, call the dashboard
// service and render the result with go-chi/render.
//
// # Routes
//
//	POST   /api/dataset           upload a CSV or XLSX file (multipart "file")
//	GET    /api/dataset           current state
//	DELETE /api/dataset           discard the dataset and every filter
//	GET    /api/summary           totals, top lists, distributions, map
//	GET    /api/rows              filtered rows, paged with offset and limit
//	GET    /api/top/{group}       one ranked group
//	GET    /api/geo               map points, domain and center
//	GET    /api/locations         location cascade options
//	POST   /api/filters           select or toggle an audience filter
//	DELETE /api/filters/{category}
//	PUT    /api/location          replace the location filter
//	GET    /api/export/rows.csv   filtered rows as CSV
//	GET    /healthz
//	GET    /metrics
//
// # Error Handling
//
// Errors are rendered as RFC 7807 problem details by the shared
// errors.ErrorHandler:
//
//	{
//	    "type": "/errors/missing-column",
//	    "title": "Missing Required Column",
//	    "status": 422,
//	    "detail": "missing required column PDX_LNG in record 2",
//	    "field": "PDX_LNG",
//	    "trace_id": "3f0c..."
//	}
//
// Read endpoints answer 404 DATASET_NOT_FOUND until a dataset is loaded.
package http
