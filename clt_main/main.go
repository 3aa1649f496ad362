package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strconv"
	"time"

	"github.com/sbinet/npyio"
	"github.com/tarstars/binary_clt/clt"
	"gonum.org/v1/gonum/mat"
)

func decodeConfig(srcConfig string, out interface{}) {
	file, err := os.Open(srcConfig)
	clt.HandleError(err)
	defer func() { clt.HandleError(file.Close()) }()

	decoder := json.NewDecoder(file)
	clt.HandleError(decoder.Decode(out))
}

//ModelConfig describes how a model is fitted: the training data, an
//optional root, the smoothing constant and the seed feeding the model's
//randomness source.
type ModelConfig struct {
	FileNameTrain string  `json:"filename_train"`
	Root          *int    `json:"root"`
	Alpha         float64 `json:"alpha"`
	Seed          int64   `json:"seed"`
}

func loadDataset(fileName string) *clt.Dataset {
	log.Print("\ttry to load dataset <", fileName, ">")
	var (
		ds  *clt.Dataset
		err error
	)
	if filepath.Ext(fileName) == ".npy" {
		ds, err = clt.ReadNpyDataset(fileName)
	} else {
		ds, err = clt.ReadCSVDataset(fileName)
	}
	clt.HandleError(err)
	return ds
}

func loadQueries(fileName string) []clt.Query {
	log.Print("\ttry to load queries <", fileName, ">")
	var (
		raw *mat.Dense
		err error
	)
	if filepath.Ext(fileName) == ".npy" {
		raw, err = clt.ReadNpy(fileName)
	} else {
		raw, err = clt.ReadCSV(fileName)
	}
	clt.HandleError(err)

	queries, err := clt.QueriesFromDense(raw)
	clt.HandleError(err)
	return queries
}

func fitModel(modelConfig ModelConfig) *clt.Model {
	trainData := loadDataset(modelConfig.FileNameTrain)

	model, err := clt.NewModel(clt.ModelParams{
		Data:  trainData,
		Root:  modelConfig.Root,
		Alpha: modelConfig.Alpha,
		Rand:  rand.New(rand.NewSource(modelConfig.Seed)),
	})
	clt.HandleError(err)
	return model
}

func writeNpy(fileName string, value *mat.Dense) {
	dst, err := os.Create(fileName)
	clt.HandleError(err)
	defer func() { clt.HandleError(dst.Close()) }()
	clt.HandleError(npyio.Write(dst, value))
}

//ReportConfig drives the report mode: fit on the training data, evaluate on
//the held-out and marginal-query files and write one sectioned csv report.
type ReportConfig struct {
	Model             ModelConfig `json:"model"`
	FileNameTest      string      `json:"filename_test"`
	FileNameMarginals string      `json:"filename_marginals"`
	SamplesNumber     int         `json:"samples_number"`
	FileNameReport    string      `json:"filename_report"`
}

//sectionWriter appends titled sections of rows to one csv report file.
type sectionWriter struct {
	w *csv.Writer
}

func (sw sectionWriter) section(title string, headers []string, rows [][]string) {
	clt.HandleError(sw.w.Write([]string{title}))
	if headers != nil {
		clt.HandleError(sw.w.Write(headers))
	}
	for _, row := range rows {
		clt.HandleError(sw.w.Write(row))
	}
	clt.HandleError(sw.w.Write([]string{}))
}

func formatColumn(column *mat.Dense) [][]string {
	h, _ := column.Dims()
	rows := make([][]string, h)
	for p := 0; p < h; p++ {
		rows[p] = []string{strconv.FormatFloat(column.At(p, 0), 'g', -1, 64)}
	}
	return rows
}

func report(srcConfig string) {
	var reportConfig ReportConfig
	decodeConfig(srcConfig, &reportConfig)

	model := fitModel(reportConfig.Model)

	testData := loadDataset(reportConfig.FileNameTest)
	marginals := loadQueries(reportConfig.FileNameMarginals)

	dst, err := os.Create(reportConfig.FileNameReport)
	clt.HandleError(err)
	defer func() { clt.HandleError(dst.Close()) }()
	w := csv.NewWriter(dst)
	defer w.Flush()
	sw := sectionWriter{w: w}

	//Tree structure, one row per variable with its predecessor.
	tree := model.Tree()
	treeRows := make([][]string, len(tree))
	for child, parent := range tree {
		label := strconv.Itoa(parent)
		if parent == -1 {
			label = "ROOT"
		}
		treeRows[child] = []string{strconv.Itoa(child), label}
	}
	sw.section("Tree Structure (Node, Parent)", []string{"Node", "Parent"}, treeRows)

	//Log CPTs, one flattened 2x2 block per variable.
	logParams := model.LogParams()
	d := len(tree)
	cptRows := make([][]string, d)
	for i := 0; i < d; i++ {
		row := make([]string, 0, 4)
		for a := 0; a < 2; a++ {
			for b := 0; b < 2; b++ {
				v, err := logParams.At(i, a, b)
				clt.HandleError(err)
				row = append(row, strconv.FormatFloat(v.(float64), 'g', -1, 64))
			}
		}
		cptRows[i] = row
	}
	sw.section("Log CPTs (Flattened)", []string{"log P(0|0)", "log P(1|0)", "log P(0|1)", "log P(1|1)"}, cptRows)

	//Average log-likelihood on the train and test splits.
	trainData := loadDataset(reportConfig.Model.FileNameTrain)
	trainQueries := datasetQueries(trainData)
	trainLL := averageLogProb(model, trainQueries)
	testLL := averageLogProb(model, datasetQueries(testData))
	sw.section("Avg Log-Likelihoods", []string{"Split", "Avg Log-Likelihood"}, [][]string{
		{"Train", strconv.FormatFloat(trainLL, 'g', -1, 64)},
		{"Test", strconv.FormatFloat(testLL, 'g', -1, 64)},
	})

	//Marginal queries through both inference paths, with wall-clock times.
	start := time.Now()
	logpExhaustive, err := model.LogProb(marginals, true)
	clt.HandleError(err)
	tExhaustive := time.Since(start)

	start = time.Now()
	logpEfficient, err := model.LogProb(marginals, false)
	clt.HandleError(err)
	tEfficient := time.Since(start)

	match := true
	for p := 0; p < len(marginals); p++ {
		diff := logpExhaustive.At(p, 0) - logpEfficient.At(p, 0)
		if diff > 1e-9 || diff < -1e-9 {
			match = false
		}
	}
	sw.section("Marginal Inference Comparison & Runtimes", nil, [][]string{
		{"Match (Exhaustive vs Efficient)", strconv.FormatBool(match)},
		{"Runtime (Exhaustive)", tExhaustive.String()},
		{"Runtime (Efficient)", tEfficient.String()},
	})
	sw.section("Marginal Log-Probabilities (Efficient)", nil, formatColumn(logpEfficient))

	//Average log-likelihood of fresh samples under the model itself.
	if reportConfig.SamplesNumber > 0 {
		samples, err := model.Sample(reportConfig.SamplesNumber)
		clt.HandleError(err)
		sampleLL, err := model.AverageLogLikelihood(samples, false)
		clt.HandleError(err)
		sw.section(fmt.Sprintf("Avg Log-Likelihood of %d Samples", reportConfig.SamplesNumber), nil, [][]string{
			{"Sampled", strconv.FormatFloat(sampleLL, 'g', -1, 64)},
		})
	}
}

func datasetQueries(ds *clt.Dataset) []clt.Query {
	n, d := ds.Dims()
	queries := make([]clt.Query, n)
	for p := 0; p < n; p++ {
		queries[p] = make(clt.Query, d)
		for q := 0; q < d; q++ {
			queries[p][q] = clt.Cell(ds.At(p, q))
		}
	}
	return queries
}

func averageLogProb(model *clt.Model, queries []clt.Query) float64 {
	lp, err := model.LogProb(queries, false)
	clt.HandleError(err)
	total := 0.0
	for p := 0; p < len(queries); p++ {
		total += lp.At(p, 0)
	}
	return total / float64(len(queries))
}

//LogprobConfig drives the logprob mode: fit, answer the query file, write
//the log-probability column as npy.
type LogprobConfig struct {
	Model           ModelConfig `json:"model"`
	FileNameQueries string      `json:"filename_queries"`
	Exhaustive      bool        `json:"exhaustive"`
	FileNameTarget  string      `json:"filename_target"`
}

func logprob(srcConfig string) {
	var logprobConfig LogprobConfig
	decodeConfig(srcConfig, &logprobConfig)

	model := fitModel(logprobConfig.Model)
	queries := loadQueries(logprobConfig.FileNameQueries)

	lp, err := model.LogProb(queries, logprobConfig.Exhaustive)
	clt.HandleError(err)
	writeNpy(logprobConfig.FileNameTarget, lp)
}

//SampleConfig drives the sample mode: fit, draw, write the sample matrix as
//npy.
type SampleConfig struct {
	Model          ModelConfig `json:"model"`
	SamplesNumber  int         `json:"samples_number"`
	FileNameTarget string      `json:"filename_target"`
}

func sample(srcConfig string) {
	var sampleConfig SampleConfig
	decodeConfig(srcConfig, &sampleConfig)

	model := fitModel(sampleConfig.Model)
	samples, err := model.Sample(sampleConfig.SamplesNumber)
	clt.HandleError(err)
	writeNpy(sampleConfig.FileNameTarget, samples)
}

//GraphConfig drives the graph mode: fit and render the learned tree.
type GraphConfig struct {
	Model          ModelConfig `json:"model"`
	FigureType     string      `json:"figure_type"`
	FileNameFigure string      `json:"filename_figure"`
}

func graph(srcConfig string) {
	var graphConfig GraphConfig
	decodeConfig(srcConfig, &graphConfig)

	model := fitModel(graphConfig.Model)
	clt.HandleError(clt.RenderTree(model.Tree(), graphConfig.FigureType, graphConfig.FileNameFigure))
}

func main() {
	runMode := flag.String("mode", "report", "you can select either 'report', 'logprob', 'sample' or 'graph' modes")
	config := flag.String("config", "clt_config.json", "a config file for the run of the program")
	memprofile := flag.String("memprofile", "", "write memory profile to `file`")

	flag.Parse()

	map[string]func(string){
		"report":  report,
		"logprob": logprob,
		"sample":  sample,
		"graph":   graph,
	}[*runMode](*config)

	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		clt.HandleError(err)
		defer func() { clt.HandleError(f.Close()) }()
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal("could not write memory profile: ", err)
		}
	}
}
