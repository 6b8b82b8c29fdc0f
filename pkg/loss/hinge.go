// Package loss provides loss functions for scoring predictions against
// binary labels in {-1, +1}.
package loss

// Hinge is the hinge loss, max(1 - prediction*label, 0).
type Hinge struct{}

// Evaluate returns the loss of prediction for label.
func (Hinge) Evaluate(prediction, label float64) float64 {
	return max(1-prediction*label, 0)
}

// Derivative returns the derivative of the loss with respect to the
// prediction. At the hinge point (prediction*label == 1) it returns 0.
func (Hinge) Derivative(prediction, label float64) float64 {
	if prediction*label < 1 {
		return -label
	}
	return 0
}
