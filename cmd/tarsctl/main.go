// Command tarsctl drives a single end-to-end TARS scenario: set up
// public parameters, issue tracer shares, register a ring of users,
// sign, verify, and threshold-trace a signature back to its signer.
// It exists to exercise the library the way a real deployment would,
// not as a production daemon.
package main

import (
	"flag"
	"fmt"
	"math/big"
	"os"

	"github.com/tarsring/tars/internal/tlog"
	"github.com/tarsring/tars/params"
	"github.com/tarsring/tars/tars"
)

func main() {
	ringSize := flag.Int("ring-size", 5, "number of users in the signing ring")
	signerAt := flag.Int("signer-at", 3, "1-based position of the signer in the ring")
	threshold := flag.Int("threshold", 3, "tracer threshold t")
	numTracers := flag.Int("num-tracers", 5, "number of tracers m")
	logLevel := flag.String("log-level", "info", "debug, info, warn, or error")
	flag.Parse()

	logger := tlog.New(os.Stdout, *logLevel)

	if err := run(*ringSize, *signerAt, *threshold, *numTracers, logger); err != nil {
		logger.Error().Err(err).Msg("tarsctl: scenario failed")
		os.Exit(1)
	}
}

func run(ringSize, signerAt, threshold, numTracers int, logger tlog.Logger) error {
	if signerAt < 1 || signerAt > ringSize {
		return fmt.Errorf("tarsctl: signer-at must be within [1, ring-size]")
	}

	cfg := demoCurveConfig(threshold, numTracers)
	pp, dealer, err := params.Setup(cfg, params.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("setup: %w", err)
	}

	shares, err := dealer.GenShares()
	if err != nil {
		return fmt.Errorf("issuing tracer shares: %w", err)
	}
	logger.Info().Int("shares", len(shares)).Msg("tarsctl: tracer shares issued")

	users := make([]*tars.User, ringSize)
	pids := make([]Point, ringSize)
	for i := range users {
		u, err := tars.UserKeygen(pp)
		if err != nil {
			return fmt.Errorf("user keygen: %w", err)
		}
		users[i] = u
		pids[i] = u.Pid
	}

	ring, err := tars.NewRing(pp, pids)
	if err != nil {
		return fmt.Errorf("building ring: %w", err)
	}

	message := []byte("tarsctl demo message")
	ct, proof, err := tars.Sign(pp, users[signerAt-1], ring, message, "tarsctl-demo-event")
	if err != nil {
		return fmt.Errorf("sign: %w", err)
	}

	ok := tars.Verify(pp, ring, message, "tarsctl-demo-event", ct, proof)
	logger.Info().Bool("ok", ok).Msg("tarsctl: signature verified")
	if !ok {
		return fmt.Errorf("tarsctl: freshly produced signature failed to verify")
	}

	decs := make([]tars.PartialDecryption, 0, threshold)
	pubShares := make([]tars.PublicShare, 0, threshold)
	for i := 0; i < threshold; i++ {
		dec, err := tars.PartialDecrypt(pp, shares[i], ct)
		if err != nil {
			return fmt.Errorf("partial decrypt by tracer %d: %w", shares[i].TracerID, err)
		}
		decs = append(decs, dec)
		pubShares = append(pubShares, shares[i].Public())
	}

	pid, err := tars.Combine(pp, threshold, pubShares, decs, ct)
	if err != nil {
		return fmt.Errorf("combine: %w", err)
	}
	traced := pp.Curve.Equal(pid, users[signerAt-1].Pid)
	logger.Info().Bool("traced_correctly", traced).Msg("tarsctl: threshold trace complete")
	if !traced {
		return fmt.Errorf("tarsctl: traced pid did not match the actual signer")
	}
	return nil
}

// Point avoids importing curve solely for the pids slice type here.
type Point = params.Point

// demoCurveConfig pins a small toy curve suitable for fast command-line
// demonstrations, not a production parameter set — see
// params.CurveConfig's note on curve selection (the cofactor is taken
// as given, never computed).
func demoCurveConfig(threshold, numTracers int) params.CurveConfig {
	return params.CurveConfig{
		Q:          big.NewInt(10007),
		A:          big.NewInt(1),
		B:          big.NewInt(7),
		N:          big.NewInt(10067),
		R:          big.NewInt(10067),
		K:          2,
		Cofactor:   big.NewInt(10),
		Threshold:  threshold,
		NumTracers: numTracers,
	}
}
