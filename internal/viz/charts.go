//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package viz

import (
	"fmt"

	"github.com/danaugrs/go-tsne/tsne"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/m-kellner/RumorLensGo/internal/lda"
	"github.com/m-kellner/RumorLensGo/internal/vv"
)

//
// THE TOPIC ARTIFACTS
//

// three fixed-name html files in the working directory: a word cloud, a
// topic/word heatmap, and a t-sne scatter of the document-topic space

const (
	CHRTWIDTH  = vv.DEFAULTCHRTWDTH
	CHRTHEIGHT = vv.DEFAULTCHRTHGHT
)

// WriteArtifacts - render every topic visualization to its fixed filename
func WriteArtifacts(tm *lda.TopicModel) error {
	if err := writepage(wordcloudpage(tm), vv.LDAWORDCLOUD); err != nil {
		return err
	}
	if err := writepage(heatmappage(tm), vv.LDAHEATMAPFILE); err != nil {
		return err
	}
	if err := writepage(scatterpage(tm), vv.LDASCATTERFILE); err != nil {
		return err
	}
	return nil
}

// wordcloudpage - one cloud per topic, sized by word weight
func wordcloudpage(tm *lda.TopicModel) *components.Page {
	const (
		SERIESNAME = "weight"
		SHAPE      = "circle"
		MINFONT    = 14
		MAXFONT    = 80
	)

	p := components.NewPage()
	p.PageTitle = "topic word clouds"

	for t := 0; t < tm.NumTopics; t++ {
		wc := charts.NewWordCloud()
		wc.SetGlobalOptions(
			charts.WithInitializationOpts(opts.Initialization{Width: "700px", Height: "500px"}),
			charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("topic %d", t+1)}),
		)

		data := make([]opts.WordCloudData, len(tm.TopWords[t]))
		for i, w := range tm.TopWords[t] {
			data[i] = opts.WordCloudData{Name: w, Value: tm.TopWeights[t][i]}
		}

		wc.AddSeries(SERIESNAME, data,
			charts.WithWorldCloudChartOpts(opts.WordCloudChart{
				SizeRange: []float32{MINFONT, MAXFONT},
				Shape:     SHAPE,
			}),
		)
		p.AddCharts(wc)
	}

	return p
}

// heatmappage - topic rows vs the union of every topic's top words
func heatmappage(tm *lda.TopicModel) *components.Page {
	const (
		SERIESNAME = "weight"
	)

	words, grid := tm.HeatGrid()

	topics := make([]string, tm.NumTopics)
	max := float32(0)
	var data []opts.HeatMapData
	for t := 0; t < tm.NumTopics; t++ {
		topics[t] = fmt.Sprintf("topic %d", t+1)
		for j, v := range grid[t] {
			data = append(data, opts.HeatMapData{Value: [3]interface{}{j, t, v}})
			if float32(v) > max {
				max = float32(v)
			}
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: CHRTWIDTH, Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: "topic/word weights"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: words, SplitArea: &opts.SplitArea{Show: true}}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: topics, SplitArea: &opts.SplitArea{Show: true}}),
		charts.WithVisualMapOpts(opts.VisualMap{Calculable: true, Min: 0, Max: max}),
	)
	hm.AddSeries(SERIESNAME, data)

	p := components.NewPage()
	p.PageTitle = "topic heatmap"
	p.AddCharts(hm)

	return p
}

// scatterpage - embed the document-topic space into 2d and color by dominant topic
func scatterpage(tm *lda.TopicModel) *components.Page {
	const (
		PERPLEX = 30
		LEARNRT = 100
		MAXITER = 150
		VERBOSE = false
		SYMSIZE = 8
	)

	ndocs, _ := tm.DocTopics.Dims()

	// t-sne wants a dense matrix; DocTopics already is one
	t := tsne.NewTSNE(2, PERPLEX, LEARNRT, MAXITER, VERBOSE)
	t.EmbedData(tm.DocTopics, nil)
	coords := t.Y

	series := make([][]opts.ScatterData, tm.NumTopics)
	for doc := 0; doc < ndocs; doc++ {
		top := tm.Dominant[doc]
		series[top] = append(series[top], opts.ScatterData{
			Value:      []interface{}{coords.At(doc, 0), coords.At(doc, 1)},
			SymbolSize: SYMSIZE,
		})
	}

	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: CHRTWIDTH, Height: CHRTHEIGHT}),
		charts.WithTitleOpts(opts.Title{Title: "documents by topic (t-sne)"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value"}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)
	for i := 0; i < tm.NumTopics; i++ {
		sc.AddSeries(fmt.Sprintf("topic %d", i+1), series[i])
	}

	p := components.NewPage()
	p.PageTitle = "topic scatter"
	p.AddCharts(sc)

	return p
}
