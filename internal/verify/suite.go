package verify

import (
	"github.com/criterion-ml/criterion/internal/loss"
	"github.com/criterion-ml/criterion/internal/nn"
	"github.com/criterion-ml/criterion/internal/optim"
	"github.com/criterion-ml/criterion/internal/reference"
	"github.com/criterion-ml/criterion/internal/tensor"
)

// Suite returns the built-in verification scenarios: every loss under test
// checked against its independently derived reference formula, plus the
// metric-learning convergence check. The slice is freshly built on each
// call so runners can filter it freely.
func Suite() []Scenario {
	return []Scenario{
		{Name: "l1/weighted-literal", Run: l1Literal},
		{Name: "l1/random", Run: l1Random},
		{Name: "l2/random", Run: l2Random},
		{Name: "softmax-ce/sparse", Run: softmaxCESparse},
		{Name: "softmax-ce/dense", Run: softmaxCEDense},
		{Name: "softmax-ce/from-logits", Run: softmaxCEFromLogits},
		{Name: "bce/raw-scores", Tol: Tolerance{Atol: 1e-6}, Run: bceRawScores},
		{Name: "bce/from-sigmoid", Run: bceFromSigmoid},
		{Name: "logistic/binary-vs-signed", Tol: Tolerance{Atol: 1e-6}, Run: logisticEncodings},
		{Name: "poisson/from-logits", Run: poissonFromLogits},
		{Name: "poisson/compute-full", Run: poissonComputeFull},
		{Name: "cosine-embedding/random", Tol: Fine, Run: cosineRandom},
		{Name: "ctc/uniform-activations", Tol: Fine, Run: ctcUniform},
		{Name: "ctc/rescaled-alpha", Tol: Fine, Run: ctcRescaledAlpha},
		{Name: "sdml/convergence", Tol: Tolerance{Atol: 0.05}, Run: sdmlConvergence},
	}
}

func l1Literal(*tensor.RNG) (*tensor.Tensor, *tensor.Tensor, error) {
	pred := tensor.MustFromSlice([]float64{1, 2, 3, 4}, tensor.Shape{4})
	label := tensor.MustFromSlice([]float64{1, 3, 5, 7}, tensor.Shape{4})
	sw := tensor.MustFromSlice([]float64{0.5, 1, 0.5, 1}, tensor.Shape{4})

	actual, err := loss.NewL1Loss(loss.Options{}).Evaluate(pred, label, sw)
	if err != nil {
		return nil, nil, err
	}
	want := reference.L1(pred.Data(), label.Data(), 1, sw.Data())
	return actual, tensor.MustFromSlice(want, tensor.Shape{4}), nil
}

func l1Random(rng *tensor.RNG) (*tensor.Tensor, *tensor.Tensor, error) {
	pred := rng.Uniform(-5, 5, tensor.Shape{16})
	label := rng.Uniform(-5, 5, tensor.Shape{16})

	actual, err := loss.NewL1Loss(loss.Options{Weight: 0.5}).Evaluate(pred, label)
	if err != nil {
		return nil, nil, err
	}
	want := reference.L1(pred.Data(), label.Data(), 0.5, nil)
	return actual, tensor.MustFromSlice(want, tensor.Shape{16}), nil
}

func l2Random(rng *tensor.RNG) (*tensor.Tensor, *tensor.Tensor, error) {
	pred := rng.Uniform(-5, 5, tensor.Shape{16})
	label := rng.Uniform(-5, 5, tensor.Shape{16})

	actual, err := loss.NewL2Loss(loss.Options{}).Evaluate(pred, label)
	if err != nil {
		return nil, nil, err
	}
	want := reference.L2(pred.Data(), label.Data(), 1, nil)
	return actual, tensor.MustFromSlice(want, tensor.Shape{16}), nil
}

// classIndices samples one class index per row.
func classIndices(rng *tensor.RNG, rows, classes int) (*tensor.Tensor, []int) {
	t := rng.Uniform(0, float64(classes), tensor.Shape{rows})
	idx := make([]int, rows)
	data := t.Data()
	for i, v := range data {
		idx[i] = int(v)
		data[i] = float64(idx[i])
	}
	return t, idx
}

func softmaxCESparse(rng *tensor.RNG) (*tensor.Tensor, *tensor.Tensor, error) {
	const rows, classes = 8, 5
	logits := rng.Normal(0, 2, tensor.Shape{rows, classes})
	labelT, labels := classIndices(rng, rows, classes)

	ce := loss.NewSoftmaxCrossEntropyLoss(loss.SoftmaxCrossEntropyOptions{})
	actual, err := ce.Evaluate(logits, labelT)
	if err != nil {
		return nil, nil, err
	}
	want := reference.SoftmaxCrossEntropy(logits.Data(), rows, classes, labels, nil)
	return actual, tensor.MustFromSlice(want, tensor.Shape{rows}), nil
}

func softmaxCEDense(rng *tensor.RNG) (*tensor.Tensor, *tensor.Tensor, error) {
	const rows, classes = 8, 5
	logits := rng.Normal(0, 2, tensor.Shape{rows, classes})

	// Per-row distributions from normalized uniform draws.
	labels := rng.Uniform(0.1, 1, tensor.Shape{rows, classes})
	data := labels.Data()
	for r := 0; r < rows; r++ {
		row := data[r*classes : (r+1)*classes]
		sum := 0.0
		for _, v := range row {
			sum += v
		}
		for c := range row {
			row[c] /= sum
		}
	}

	ce := loss.NewSoftmaxCrossEntropyLoss(loss.SoftmaxCrossEntropyOptions{DenseLabel: true})
	actual, err := ce.Evaluate(logits, labels)
	if err != nil {
		return nil, nil, err
	}
	want := reference.SoftmaxCrossEntropyDense(logits.Data(), labels.Data(), rows, classes, nil)
	return actual, tensor.MustFromSlice(want, tensor.Shape{rows}), nil
}

func softmaxCEFromLogits(rng *tensor.RNG) (*tensor.Tensor, *tensor.Tensor, error) {
	const rows, classes = 8, 5
	logits := rng.Normal(0, 2, tensor.Shape{rows, classes})
	labelT, labels := classIndices(rng, rows, classes)

	// Normalize to log-probabilities by subtracting each row's logsumexp,
	// exercising the from-logits path against the log-prob reference.
	logProbs := logits.Clone()
	data := logProbs.Data()
	for r := 0; r < rows; r++ {
		row := data[r*classes : (r+1)*classes]
		ref := reference.SoftmaxCrossEntropy(row, 1, classes, []int{0}, nil)
		shift := ref[0] + row[0] // logsumexp of the row
		for c := range row {
			row[c] -= shift
		}
	}

	ce := loss.NewSoftmaxCrossEntropyLoss(loss.SoftmaxCrossEntropyOptions{FromLogits: true})
	actual, err := ce.Evaluate(logProbs, labelT)
	if err != nil {
		return nil, nil, err
	}
	want := reference.CrossEntropyFromLogProbs(logProbs.Data(), rows, classes, labels)
	return actual, tensor.MustFromSlice(want, tensor.Shape{rows}), nil
}

func bceRawScores(rng *tensor.RNG) (*tensor.Tensor, *tensor.Tensor, error) {
	const n = 64
	scores := rng.Uniform(-10, 10, tensor.Shape{n})
	labels := rng.Bernoulli(0.5, tensor.Shape{n})

	actual, err := loss.NewSigmoidBCELoss(loss.SigmoidBCEOptions{}).Evaluate(scores, labels)
	if err != nil {
		return nil, nil, err
	}
	want := reference.SigmoidBCE(scores.Data(), labels.Data(), false)
	return actual, tensor.MustFromSlice(want, tensor.Shape{n}), nil
}

func bceFromSigmoid(rng *tensor.RNG) (*tensor.Tensor, *tensor.Tensor, error) {
	const n = 64
	probs := rng.Uniform(0.1, 0.9, tensor.Shape{n})
	labels := rng.Bernoulli(0.5, tensor.Shape{n})

	actual, err := loss.NewSigmoidBCELoss(loss.SigmoidBCEOptions{FromSigmoid: true}).Evaluate(probs, labels)
	if err != nil {
		return nil, nil, err
	}
	want := reference.SigmoidBCE(probs.Data(), labels.Data(), true)
	return actual, tensor.MustFromSlice(want, tensor.Shape{n}), nil
}

// logisticEncodings checks that the signed {-1,1} encoding reproduces the
// binary {0,1} encoding on the same underlying labels.
func logisticEncodings(rng *tensor.RNG) (*tensor.Tensor, *tensor.Tensor, error) {
	const n = 64
	scores := rng.Uniform(-10, 10, tensor.Shape{n})
	binary := rng.Bernoulli(0.5, tensor.Shape{n})
	signed := binary.Clone()
	sd := signed.Data()
	for i := range sd {
		sd[i] = 2*sd[i] - 1
	}

	binLoss, err := loss.NewLogisticLoss(loss.LabelFormatBinary, loss.Options{})
	if err != nil {
		return nil, nil, err
	}
	signedLoss, err := loss.NewLogisticLoss(loss.LabelFormatSigned, loss.Options{})
	if err != nil {
		return nil, nil, err
	}
	actual, err := signedLoss.Evaluate(scores, signed)
	if err != nil {
		return nil, nil, err
	}
	expected, err := binLoss.Evaluate(scores, binary)
	if err != nil {
		return nil, nil, err
	}
	return actual, expected, nil
}

func poissonFromLogits(rng *tensor.RNG) (*tensor.Tensor, *tensor.Tensor, error) {
	const rows, cols = 6, 4
	pred := rng.Uniform(0, 3, tensor.Shape{rows, cols})
	target := rng.Uniform(0, 3, tensor.Shape{rows, cols})

	l := loss.NewPoissonNLLLoss(loss.PoissonNLLOptions{FromLogits: true})
	actual, err := l.Evaluate(pred, target)
	if err != nil {
		return nil, nil, err
	}
	want := reference.PoissonNLL(pred.Data(), target.Data(), rows, cols, true, false)
	return actual, tensor.MustFromSlice(want, tensor.Shape{rows}), nil
}

func poissonComputeFull(rng *tensor.RNG) (*tensor.Tensor, *tensor.Tensor, error) {
	const rows, cols = 6, 4
	pred := rng.Uniform(0.5, 5, tensor.Shape{rows, cols})
	target := rng.Uniform(0.5, 5, tensor.Shape{rows, cols})

	l := loss.NewPoissonNLLLoss(loss.PoissonNLLOptions{ComputeFull: true})
	actual, err := l.Evaluate(pred, target)
	if err != nil {
		return nil, nil, err
	}
	want := reference.PoissonNLL(pred.Data(), target.Data(), rows, cols, false, true)
	return actual, tensor.MustFromSlice(want, tensor.Shape{rows}), nil
}

func cosineRandom(rng *tensor.RNG) (*tensor.Tensor, *tensor.Tensor, error) {
	const rows, cols = 6, 3
	x1 := rng.Normal(0, 1, tensor.Shape{rows, cols})
	x2 := rng.Normal(0, 1, tensor.Shape{rows, cols})
	labels := rng.Bernoulli(0.5, tensor.Shape{rows})
	ld := labels.Data()
	for i := range ld {
		ld[i] = 2*ld[i] - 1
	}

	cel, err := loss.NewCosineEmbeddingLoss(loss.CosineEmbeddingOptions{})
	if err != nil {
		return nil, nil, err
	}
	actual, err := cel.Evaluate(x1, x2, labels)
	if err != nil {
		return nil, nil, err
	}
	want := reference.CosineEmbedding(x1.Data(), x2.Data(), rows, cols, labels.Data())
	return actual, tensor.MustFromSlice(want, tensor.Shape{rows}), nil
}

func ctcUniform(*tensor.RNG) (*tensor.Tensor, *tensor.Tensor, error) {
	l, err := loss.NewCTCLoss(loss.CTCOptions{})
	if err != nil {
		return nil, nil, err
	}
	data := tensor.Ones(tensor.Shape{2, 20, 4})
	labels := tensor.MustFromSlice([]float64{1, 0, -1, -1, 2, 1, 1, -1}, tensor.Shape{2, 4})
	actual, err := l.Evaluate(data, labels)
	if err != nil {
		return nil, nil, err
	}
	want := tensor.MustFromSlice([]float64{18.82820702, 16.50581741}, tensor.Shape{2})
	return actual, want, nil
}

// ctcRescaledAlpha cross-checks the log-space forward pass against the
// reference's independently rescaled linear-space recurrence on random
// activations.
func ctcRescaledAlpha(rng *tensor.RNG) (*tensor.Tensor, *tensor.Tensor, error) {
	const steps, classes = 12, 5
	l, err := loss.NewCTCLoss(loss.CTCOptions{})
	if err != nil {
		return nil, nil, err
	}
	data := rng.Normal(0, 1, tensor.Shape{1, steps, classes})
	labels := tensor.MustFromSlice([]float64{1, 3, 0, 2}, tensor.Shape{1, 4})

	actual, err := l.Evaluate(data, labels)
	if err != nil {
		return nil, nil, err
	}
	want := reference.CTC(data.Data(), steps, classes, []int{1, 3, 0, 2})
	return actual, tensor.MustFromSlice([]float64{want}, tensor.Shape{1}), nil
}

// sdmlConvergence trains the small encoder and reports its final mean loss
// against a zero target; the scenario tolerance carries the acceptance
// bound.
func sdmlConvergence(rng *tensor.RNG) (*tensor.Tensor, *tensor.Tensor, error) {
	const (
		n      = 5
		dim    = 10
		epochs = 50
	)
	sdml, err := loss.NewSDMLLoss(0)
	if err != nil {
		return nil, nil, err
	}
	data := rng.Uniform(-1, 1, tensor.Shape{n, dim})
	noise := rng.Uniform(-0.1, 0.1, tensor.Shape{n, dim})
	pos, err := tensor.Add(data, noise)
	if err != nil {
		return nil, nil, err
	}

	model := nn.NewDense(dim, dim, true, rng)
	opt := optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: 0.1})

	step := func() error {
		z1, err := model.Forward(data)
		if err != nil {
			return err
		}
		z2, err := model.Forward(pos)
		if err != nil {
			return err
		}
		g1, g2, err := sdml.Gradients(z1, z2)
		if err != nil {
			return err
		}
		opt.ZeroGrad()
		if _, err := model.Backward(g2); err != nil {
			return err
		}
		if _, err := model.Forward(data); err != nil {
			return err
		}
		if _, err := model.Backward(g1); err != nil {
			return err
		}
		opt.Step()
		return nil
	}
	for epoch := 0; epoch < epochs; epoch++ {
		if err := step(); err != nil {
			return nil, nil, err
		}
	}

	z1, err := model.Forward(data)
	if err != nil {
		return nil, nil, err
	}
	z2, err := model.Forward(pos)
	if err != nil {
		return nil, nil, err
	}
	final, err := sdml.Evaluate(z1, z2)
	if err != nil {
		return nil, nil, err
	}
	actual := tensor.MustFromSlice([]float64{final.Mean()}, tensor.Shape{1})
	return actual, tensor.Zeros(tensor.Shape{1}), nil
}
