package logger

// ComponentNames defines standardized component names for consistent logging
var ComponentNames = struct {
	Server     string
	Config     string
	Middleware string
	Handler    string
	Vendor     string
	Database   string
	Monitoring string
}{
	Server:     "Server",
	Config:     "Config",
	Middleware: "Middleware",
	Handler:    "Handler",
	Vendor:     "Vendor",
	Database:   "Database",
	Monitoring: "Monitoring",
}
