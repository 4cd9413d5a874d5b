package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/nanokusa/go-shop-catalog/internal/pagination"
	"github.com/nanokusa/go-shop-catalog/internal/status"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error *status.Status `json:"error"`
}

// writeError renders any error as its public status form: the HTTP code
// comes from the canonical code mapping, sensitive details and the cause
// never leave the process.
func writeError(w http.ResponseWriter, err error) {
	st := status.Convert(err)
	writeJSON(w, st.HTTPStatus(), errorBody{Error: st.Public()})
}

// pageOption reads relay cursor arguments from the query string.
func pageOption(r *http.Request) (pagination.Option, error) {
	var opt pagination.Option
	q := r.URL.Query()
	if s := q.Get("after"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return opt, status.InvalidArgument("after", s, "a decimal integer")
		}
		opt.After = &v
	}
	if s := q.Get("before"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return opt, status.InvalidArgument("before", s, "a decimal integer")
		}
		opt.Before = &v
	}
	if s := q.Get("first"); s != "" {
		v, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return opt, status.InvalidArgument("first", s, "a decimal integer")
		}
		n := int32(v)
		opt.First = &n
	}
	if s := q.Get("last"); s != "" {
		v, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return opt, status.InvalidArgument("last", s, "a decimal integer")
		}
		n := int32(v)
		opt.Last = &n
	}
	return opt, nil
}
