//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gonum.org/v1/gonum/mat"

	"github.com/m-kellner/RumorLensGo/internal/cls"
	"github.com/m-kellner/RumorLensGo/internal/enc"
	"github.com/m-kellner/RumorLensGo/internal/feat"
)

//
// CLASSIFICATION ROUTE
//

// ClassifyRequest - one post to classify; the vectors may be omitted
type ClassifyRequest struct {
	Text         string    `json:"text"`
	TopicVec     []float64 `json:"topic_vector,omitempty"`
	SentimentVec []float64 `json:"sentiment_vector,omitempty"`
}

// ClassifyReply - the verdict on one post
type ClassifyReply struct {
	Label      int        `json:"label"`
	LabelName  string     `json:"label_name"`
	Confidence float64    `json:"confidence"`
	Probs      [2]float64 `json:"probabilities"`
}

// RtClassify - classify one post with the loaded checkpoint
func (srv *Server) RtClassify(c echo.Context) error {
	const (
		FAIL1 = "empty 'text'"
		FAIL2 = "a %d-wide topic vector does not fit a model wanting %d"
	)

	var req ClassifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, FAIL1)
	}

	if len(req.TopicVec) == 0 {
		// no topic context for an ad hoc post: a flat distribution
		req.TopicVec = make([]float64, srv.Model.TopicDim)
		for i := range req.TopicVec {
			req.TopicVec[i] = 1 / float64(srv.Model.TopicDim)
		}
	}
	if len(req.TopicVec) != srv.Model.TopicDim {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf(FAIL2, len(req.TopicVec), srv.Model.TopicDim))
	}

	if len(req.SentimentVec) == 0 {
		req.SentimentVec = feat.SentimentVector(req.Text)
	}
	if len(req.SentimentVec) != srv.Model.SentDim {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf(FAIL2, len(req.SentimentVec), srv.Model.SentDim))
	}

	emb, err := enc.EncodeBatch(c.Request().Context(), srv.Encoder, []string{req.Text})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	topics := mat.NewDense(1, srv.Model.TopicDim, req.TopicVec)
	sents := mat.NewDense(1, srv.Model.SentDim, req.SentimentVec)

	preds, err := srv.Model.Predict(emb, topics, sents)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	p := preds[0]
	return c.JSONPretty(http.StatusOK, ClassifyReply{
		Label:      p.Label,
		LabelName:  cls.LabelName(p.Label),
		Confidence: p.Confidence,
		Probs:      p.Probs,
	}, "  ")
}
