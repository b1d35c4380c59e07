//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

//
// SHARED STRUCTS
//

// CurrentConfiguration - the configuration for this run; set at launch and not mutated afterwards
type CurrentConfiguration struct {
	BatchSize     int
	BlackAndWhite bool
	CheckpointFl  string
	DBFile        string
	Dropout       float64
	EchoLog       int
	EncoderModel  string
	EncoderDir    string
	Epochs        int
	GateHidden    int
	Gzip          bool
	HeadHidden    int
	HostIP        string
	HostPort      int
	InputFile     string
	LDAIterations int
	LLMModel      string
	LLMStream     bool
	LLMURL        string
	LearningRate  float64
	LogLevel      int
	ProfileCPU    bool
	QuietStart    bool
	Seed          int64
	Topics        int
	WorkerCount   int
}

// PostRecord - one row of the posts TSV
type PostRecord struct {
	ID    string
	Text  string
	Label int // canonical 0/1; -1 in the unlabeled variant
}

// Sample - one unit of classifier input; immutable once loaded
type Sample struct {
	Text         string
	TopicVec     []float64
	SentimentVec []float64
	Label        int // 0 or 1
}

// Prediction - classifier output for one sample
type Prediction struct {
	Label      int
	Confidence float64 // softmax probability of the predicted class
	Probs      [2]float64
}

// ClassifiedPost - one LLM prompt-classification result
type ClassifiedPost struct {
	PostID    string
	Text      string
	TrueLabel int // canonical 0/1; -1 in the unlabeled variant
	Answer    int // canonical prediction; -1 when the task does not map to labels
	RawReply  string
	Failed    bool
}

// TopicSummary - one LLM-generated topic label
type TopicSummary struct {
	Topic    int
	TopWords []string
	Summary  string
	Failed   bool
}
