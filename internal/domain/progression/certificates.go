package progression

import (
	"context"
	"errors"
	"log/slog"

	"github.com/questpilot/hackquest-bot/internal/domain/platform"
	"github.com/questpilot/hackquest-bot/questpilot/utils"
)

var (
	ErrWrongChain   = errors.New("certificate is issued on another chain")
	ErrEmptyBalance = errors.New("wallet has no funds for gas")
)

// MintCertificates mints every claimed and unminted phase certificate.
// A failure only skips the certificate it happened on.
func (r *Runner) MintCertificates(ctx context.Context, eco platform.Ecosystem) error {
	for i, phase := range eco.Phases {
		if phase.CertificateID == "" {
			continue
		}
		log := r.log.With(slog.Int("phase", i+1), slog.String("type", "chain"))
		if err := r.mintCertificate(ctx, log, eco.ID, phase.CertificateID); err != nil {
			if err := r.skip(ctx, err, "Mint cancelled", slog.String("certificate", phase.CertificateID)); err != nil {
				return err
			}
		}
		if err := utils.SleepRange(ctx, r.svc.opts.TaskDelay); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) mintCertificate(ctx context.Context, log *slog.Logger, ecosystemID, certificateID string) error {
	cert, err := retry(ctx, r, "certificate status", func() (platform.Certificate, error) {
		return r.actions.CertificateStatus(ctx, r.session, ecosystemID, certificateID)
	})
	if err != nil {
		return err
	}
	log = log.With(slog.String("certificate", cert.Name))

	if !cert.IsClaimed {
		log.Info("Certificate not claimed")
		return nil
	}
	if cert.IsMinted {
		log.Info("Certificate already minted")
		return nil
	}
	if cert.ChainID != r.wallet.ChainID() {
		return ErrWrongChain
	}

	balance, err := r.wallet.Balance(ctx)
	if err != nil {
		return err
	}
	if balance.Sign() <= 0 {
		return ErrEmptyBalance
	}

	signature, err := retry(ctx, r, "certificate signature", func() (string, error) {
		return r.actions.CertificateSignature(ctx, r.session, certificateID, r.wallet.Address())
	})
	if err != nil {
		return err
	}

	log.Info("Minting certificate")
	receipt, err := r.wallet.MintCertificate(ctx, platform.MintRequest{
		ContractAddress: cert.ContractAddress,
		Username:        cert.ClaimUsername,
		CertificateNo:   cert.ClaimNumber,
		Signature:       signature,
	})
	if err != nil {
		return err
	}
	r.svc.observer.Claimed("certificate", 0, 0)
	log.Info("Minted certificate",
		slog.String("tx", receipt.TxHash),
		slog.String("explorer", receipt.ExplorerURL))
	return nil
}
