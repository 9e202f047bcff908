package multisig

import (
	"bytes"

	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/crypto"
	"github.com/iov-one/onesig/errors"
)

// hashPair hashes two nodes in ascending byte order, so that a proof does
// not need to say on which side a sibling is.
func hashPair(a, b onesig.Hash) onesig.Hash {
	if bytes.Compare(a[:], b[:]) < 0 {
		return crypto.Keccak256(a[:], b[:])
	}
	return crypto.Keccak256(b[:], a[:])
}

// ProcessProof returns the root obtained by folding the proof into the
// leaf, from the leaf upwards.
func ProcessProof(proof []onesig.Hash, leaf onesig.Hash) onesig.Hash {
	computed := leaf
	for _, sibling := range proof {
		computed = hashPair(computed, sibling)
	}
	return computed
}

// VerifyProof returns ErrInvalidProof unless the proof reduces the leaf to
// the root.
func VerifyProof(root onesig.Hash, proof []onesig.Hash, leaf onesig.Hash) error {
	if got := ProcessProof(proof, leaf); got != root {
		return errors.Wrapf(ErrInvalidProof, "computed root %s", got)
	}
	return nil
}

// Tree is a sorted pair Merkle tree. An odd node at the end of a level is
// promoted to the next level unchanged.
type Tree struct {
	// layers[0] are the leaves, the last layer holds the root.
	layers [][]onesig.Hash
}

// NewTree builds a tree over the leaves, in given order.
func NewTree(leaves []onesig.Hash) (*Tree, error) {
	if len(leaves) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "no leaves")
	}
	layer := append([]onesig.Hash(nil), leaves...)
	layers := [][]onesig.Hash{layer}
	for len(layer) > 1 {
		next := make([]onesig.Hash, 0, (len(layer)+1)/2)
		for i := 0; i < len(layer); i += 2 {
			if i+1 == len(layer) {
				next = append(next, layer[i])
				continue
			}
			next = append(next, hashPair(layer[i], layer[i+1]))
		}
		layers = append(layers, next)
		layer = next
	}
	return &Tree{layers: layers}, nil
}

// Root returns the commitment of the tree.
func (t *Tree) Root() onesig.Hash {
	return t.layers[len(t.layers)-1][0]
}

// Len returns the number of leaves.
func (t *Tree) Len() int {
	return len(t.layers[0])
}

// Leaf returns the n-th leaf.
func (t *Tree) Leaf(n int) onesig.Hash {
	return t.layers[0][n]
}

// Proof returns the membership proof of the n-th leaf.
func (t *Tree) Proof(n int) ([]onesig.Hash, error) {
	if n < 0 || n >= t.Len() {
		return nil, errors.Wrapf(errors.ErrInput, "leaf %d out of %d", n, t.Len())
	}
	var proof []onesig.Hash
	for _, layer := range t.layers[:len(t.layers)-1] {
		sibling := n ^ 1
		if sibling < len(layer) {
			proof = append(proof, layer[sibling])
		}
		n /= 2
	}
	return proof, nil
}
