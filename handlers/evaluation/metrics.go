package evaluation

import (
	"fmt"
	"sort"

	"github.com/Meesho/BharatMLStack/transferflow/handlers/dataset"
	"github.com/Meesho/BharatMLStack/transferflow/internal/errors"
)

// MetricReport is the evaluation summary for one held-out split. Precision,
// recall and F1 treat label 1 as the positive class.
type MetricReport struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	AUC       float64 `json:"auc"`
	Confusion [][]int `json:"confusion_matrix"`
	Support   []int   `json:"support"`
}

// HardLabels collapses probability rows to class predictions by argmax. Ties
// resolve to the lower class index.
func HardLabels(probabilities [][]float32) []int {
	labels := make([]int, len(probabilities))
	for i, row := range probabilities {
		best := 0
		for class := 1; class < len(row); class++ {
			if row[class] > row[best] {
				best = class
			}
		}
		labels[i] = best
	}
	return labels
}

// LabelsFromOneHot recovers class indices from one-hot rows.
func LabelsFromOneHot(oneHot [][]int) []int {
	labels := make([]int, len(oneHot))
	for i, row := range oneHot {
		for class, v := range row {
			if v == 1 {
				labels[i] = class
				break
			}
		}
	}
	return labels
}

// ConfusionMatrix counts (true, predicted) pairs. Row is the true class,
// column the predicted class.
func ConfusionMatrix(yTrue, yPred []int) ([][]int, error) {
	if len(yTrue) != len(yPred) {
		return nil, &errors.AlignmentError{
			ErrorMsg: fmt.Sprintf("confusion matrix called with %d true labels and %d predictions", len(yTrue), len(yPred)),
		}
	}
	matrix := make([][]int, dataset.NumClasses)
	for i := range matrix {
		matrix[i] = make([]int, dataset.NumClasses)
	}
	for i := range yTrue {
		if yTrue[i] < 0 || yTrue[i] >= dataset.NumClasses || yPred[i] < 0 || yPred[i] >= dataset.NumClasses {
			return nil, fmt.Errorf("label out of range at row %d: true=%d pred=%d", i, yTrue[i], yPred[i])
		}
		matrix[yTrue[i]][yPred[i]]++
	}
	return matrix, nil
}

// Accuracy is the fraction of rows on the confusion matrix diagonal.
func Accuracy(confusion [][]int) float64 {
	correct, total := 0, 0
	for i, row := range confusion {
		for j, count := range row {
			total += count
			if i == j {
				correct += count
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

// Precision for the positive class. Zero when nothing was predicted positive.
func Precision(confusion [][]int) float64 {
	predictedPositive := confusion[dataset.LabelNegative][dataset.LabelPositive] + confusion[dataset.LabelPositive][dataset.LabelPositive]
	if predictedPositive == 0 {
		return 0
	}
	return float64(confusion[dataset.LabelPositive][dataset.LabelPositive]) / float64(predictedPositive)
}

// Recall for the positive class. Zero when the split holds no positives.
func Recall(confusion [][]int) float64 {
	actualPositive := confusion[dataset.LabelPositive][dataset.LabelNegative] + confusion[dataset.LabelPositive][dataset.LabelPositive]
	if actualPositive == 0 {
		return 0
	}
	return float64(confusion[dataset.LabelPositive][dataset.LabelPositive]) / float64(actualPositive)
}

func F1(precision, recall float64) float64 {
	if precision+recall == 0 {
		return 0
	}
	return 2 * precision * recall / (precision + recall)
}

// AUC computes the area under the ROC curve from the positive-class
// probability column, using the rank statistic form. Tied scores contribute
// half a rank. A split with only one class has no defined AUC.
func AUC(yTrue []int, probabilities [][]float32) (float64, error) {
	if len(yTrue) != len(probabilities) {
		return 0, &errors.AlignmentError{
			ErrorMsg: fmt.Sprintf("auc called with %d true labels and %d probability rows", len(yTrue), len(probabilities)),
		}
	}
	scores := make([]float64, len(yTrue))
	for i, row := range probabilities {
		if len(row) != dataset.NumClasses {
			return 0, &errors.AlignmentError{
				ErrorMsg: fmt.Sprintf("probability row %d has %d columns, expected %d", i, len(row), dataset.NumClasses),
			}
		}
		scores[i] = float64(row[dataset.LabelPositive])
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return scores[order[a]] < scores[order[b]] })

	// average ranks over tie groups
	ranks := make([]float64, len(scores))
	for i := 0; i < len(order); {
		j := i
		for j < len(order) && scores[order[j]] == scores[order[i]] {
			j++
		}
		avgRank := float64(i+j+1) / 2 // ranks are 1-based
		for k := i; k < j; k++ {
			ranks[order[k]] = avgRank
		}
		i = j
	}

	positives, rankSum := 0, 0.0
	for i, label := range yTrue {
		if label == dataset.LabelPositive {
			positives++
			rankSum += ranks[i]
		}
	}
	negatives := len(yTrue) - positives
	if positives == 0 || negatives == 0 {
		return 0, fmt.Errorf("auc undefined: split holds %d positives and %d negatives", positives, negatives)
	}
	return (rankSum - float64(positives)*float64(positives+1)/2) / (float64(positives) * float64(negatives)), nil
}

// Report assembles the full metric set for a held-out split.
func Report(yTrue []int, probabilities [][]float32) (*MetricReport, error) {
	yPred := HardLabels(probabilities)
	confusion, err := ConfusionMatrix(yTrue, yPred)
	if err != nil {
		return nil, err
	}
	auc, err := AUC(yTrue, probabilities)
	if err != nil {
		return nil, err
	}

	support := make([]int, dataset.NumClasses)
	for _, label := range yTrue {
		support[label]++
	}
	precision := Precision(confusion)
	recall := Recall(confusion)
	return &MetricReport{
		Accuracy:  Accuracy(confusion),
		Precision: precision,
		Recall:    recall,
		F1:        F1(precision, recall),
		AUC:       auc,
		Confusion: confusion,
		Support:   support,
	}, nil
}
