package api

// DefaultBaseURL is the collection endpoint used when nothing else is configured.
const DefaultBaseURL = "http://localhost:8000/api/posts"
