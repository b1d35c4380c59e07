//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

const (
	MYNAME    = "RumorLensGo"
	SHORTNAME = "RLG"
	VERSION   = "1.2.0"

	// configuration
	CONFIGNAME    = "rlg-conf.json"
	CONFIGALTAPTH = "%s/.config/RumorLensGo/"

	// classifier model
	DEFAULTTOPICDIM   = 8
	DEFAULTSENTDIM    = 5
	DEFAULTGATEHIDDEN = 64
	DEFAULTHEADHIDDEN = 128
	DEFAULTDROPOUT    = 0.3
	DEFAULTEPOCHS     = 5
	DEFAULTBATCHSIZE  = 16
	DEFAULTLEARNINGRT = 0.001
	DEFAULTSEED       = 42
	NUMCLASSES        = 2
	DEFAULTCHECKPOINT = "rlg-best-model.gob"
	DEFAULTENCODER    = "hashing" // or a cybertron model name
	DEFAULTENCODERDIR = "./models"
	CYBERTRONMINILM   = "sentence-transformers/all-MiniLM-L6-v2"
	HASHINGENCODERDIM = 256
	DEFAULTVALIDSPLIT = 0.2

	// lda
	LDATOPICS      = 8
	LDAMAXTOPICS   = 30
	LDAITER        = 200
	LDAXFORMPASSES = 100
	LDATOPWORDS    = 8

	// artifacts: fixed filenames in the working directory
	LDASCATTERFILE  = "rlg-lda-topics.html"
	LDAWORDCLOUD    = "rlg-lda-wordcloud.html"
	LDAHEATMAPFILE  = "rlg-lda-heatmap.html"
	DEFAULTCHRTWDTH = "1500px"
	DEFAULTCHRTHGHT = "1200px"

	// llm service
	DEFAULTLLMURL    = "http://localhost:11434"
	DEFAULTLLMMODEL  = "llama3"
	LLMTIMEOUT       = 300 // seconds per call
	LLMSCANBUFFER    = 1024 * 1024
	FAILEDPLACEHOLD  = "[CLASSIFICATION FAILED]"
	SUMMARYPLACEHOLD = "[SUMMARY UNAVAILABLE]"

	// results cache
	DEFAULTDBFILE = "rlg-results.db"

	// tsv input
	COLPOSTID   = "post_id"
	COLPOSTTEXT = "post_text"
	COLLABEL    = "label"

	// server
	SERVEDFROMHOST           = "127.0.0.1"
	SERVEDFROMPORT           = 8000
	MAXECHOREQPERSECONDPERIP = 60

	// word2vec
	W2VNEIGHBORS    = 8
	W2VNEIGHBORSMAX = 40
	W2VDIMENSIONS   = 125
	W2VITERATIONS   = 12
	W2VWINDOW       = 8
)

const HELPTEXT = `command line options:
   C1-bs NUMC0: batch size for training
   C1-bwC0: "black and white" console: no colors
   C1-cf PATHC0: read the configuration from PATH
   C1-ck PATHC0: model checkpoint file (default: %s)
   C1-db PATHC0: results cache file (default: %s)
   C1-do NUMC0: dropout rate for the classifier head
   C1-el NUMC0: echo server log level (0-3)
   C1-em NAMEC0: text encoder: 'hashing', 'bert', or a cybertron model name
   C1-ep NUMC0: training epochs (default: %d)
   C1-gl NUMC0: log level (0-5)
   C1-gzC0: enable gzip on the echo server
   C1-in PATHC0: input TSV file of posts
   C1-li NUMC0: LDA iterations (default: %d)
   C1-lm NAMEC0: LLM model name (default: %s)
   C1-lr NUMC0: learning rate for training
   C1-md PATHC0: cybertron model directory (default: %s)
   C1-pfC0: enable CPU profiling
   C1-qC0: quiet launch
   C1-sa IPC0: serve from this address (default: %s)
   C1-sd NUMC0: random seed (default: %d)
   C1-sp NUMC0: serve from this port (default: %d)
   C1-stC0: stream LLM responses
   C1-tk NUMC0: number of topics (default: %d)
   C1-u URLC0: LLM service url (default: %s)
   C1-vC0: print the version and exit
   C1-wc NUMC0: worker count (default: number of cpus)

subcommands:
   C4trainC0: train the multimodal fake/real classifier on a labeled TSV
   C4inferC0: classify posts with the best saved checkpoint
   C4topicsC0: model topics via LDA; write the html visualizations
   C4sentimentC0: prompt-classify post sentiment via the LLM service
   C4fakenewsC0: prompt-classify fake/real news and score accuracy
   C4neighborsC0: word2vec nearest neighbors for the top topic words
   C4serveC0: serve the classifier and the generated artifacts over http
`
