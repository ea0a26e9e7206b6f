//go:build !unix

package terminal

func readRetry(int, error) (bool, error) {
	return false, nil
}
