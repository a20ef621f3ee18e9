package firetree

// CallOption customizes a single operation: extra query parameters appended
// to the target URL and extra HTTP headers sent with the request.
type CallOption func(*callOptions)

type callOptions struct {
	query  map[string]string
	header map[string]string
}

func applyCallOptions(opts []CallOption) callOptions {
	co := callOptions{
		query:  make(map[string]string),
		header: make(map[string]string),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&co)
		}
	}
	return co
}

// WithQuery appends a single query parameter to the request URL.
func WithQuery(key, value string) CallOption {
	return func(co *callOptions) {
		co.query[key] = value
	}
}

// WithQueryMap appends every entry of m as a query parameter.
func WithQueryMap(m map[string]string) CallOption {
	return func(co *callOptions) {
		for k, v := range m {
			co.query[k] = v
		}
	}
}

// WithHeader sets a single HTTP header on the request.
func WithHeader(key, value string) CallOption {
	return func(co *callOptions) {
		co.header[key] = value
	}
}

// WithHeaderMap sets every entry of m as an HTTP header on the request.
func WithHeaderMap(m map[string]string) CallOption {
	return func(co *callOptions) {
		for k, v := range m {
			co.header[k] = v
		}
	}
}
