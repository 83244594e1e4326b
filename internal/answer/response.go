package answer

import "encoding/base64"

// Response is the wire form of an AggregateResult. The graph is carried as
// a base64-encoded PNG.
type Response struct {
	Query      string             `json:"query"`
	Answers    []NormalizedAnswer `json:"answers"`
	BestAnswer string             `json:"best_answer"`
	Expression string             `json:"expression,omitempty"`
	Graph      string             `json:"graph,omitempty"`
}

// NewResponse converts r to its wire form.
func NewResponse(r AggregateResult) Response {
	resp := Response{
		Query:      r.Query,
		Answers:    r.Answers,
		BestAnswer: r.BestAnswer,
	}
	if resp.Answers == nil {
		resp.Answers = []NormalizedAnswer{}
	}
	if r.Graph != nil {
		resp.Expression = r.Graph.Expression
		resp.Graph = base64.StdEncoding.EncodeToString(r.Graph.PNG)
	}
	return resp
}
