package hackquest

import (
	"context"
	"fmt"
	"strings"

	"github.com/questpilot/hackquest-bot/internal/domain/platform"
	"github.com/tidwall/gjson"
)

// ClaimQuestReward claims a mission reward. A reward the platform reports
// as already claimed is a success without coins.
func (c *Client) ClaimQuestReward(ctx context.Context, s *platform.Session, questID string) (platform.QuestClaim, error) {
	data, err := c.query(ctx, s, "ClaimMissionReward", claimMissionMutation, map[string]any{
		"missionId": questID,
	}, true)
	if err != nil {
		msg, ok := apiMessage(err)
		switch {
		case !ok:
			return platform.QuestClaim{}, err
		case msg == msgRewardClaimed:
			return platform.QuestClaim{AlreadyClaimed: true}, nil
		default:
			return platform.QuestClaim{}, platform.Retryable("ClaimMissionReward", fmt.Errorf("%w: %s", platform.ErrNotClaimable, msg))
		}
	}

	reward := data.Get("claimMissionReward")
	if !reward.Exists() || reward.Type == gjson.Null {
		return platform.QuestClaim{}, platform.Retryable("ClaimMissionReward", platform.ErrNoData)
	}
	return platform.QuestClaim{
		Reward: reward.Get("coin").Int(),
		Exp:    reward.Get("exp").Int(),
	}, nil
}

// CertificateStatus reads the account's claim and mint state for one
// ecosystem certificate. A certificate without a user record is unclaimed.
func (c *Client) CertificateStatus(ctx context.Context, s *platform.Session, ecosystemID, certificateID string) (platform.Certificate, error) {
	data, err := c.query(ctx, s, "CertificateProgress", certificateProgressQuery, ecosystemWhere(ecosystemID), true)
	if err != nil {
		return platform.Certificate{}, err
	}

	var found gjson.Result
	for _, cert := range certificateEntries(data.Get("certificate")) {
		if cert.Get("id").String() == certificateID {
			found = cert
			break
		}
	}
	if !found.Exists() {
		return platform.Certificate{}, platform.Retryable("CertificateProgress", fmt.Errorf("%w: certificate %s", platform.ErrNoData, certificateID))
	}

	cert := platform.Certificate{
		ID:              certificateID,
		Name:            found.Get("name").String(),
		ChainID:         found.Get("chainId").Int(),
		ContractAddress: found.Get("contract").String(),
	}
	if uc := found.Get("userCertification"); uc.Exists() && uc.Type != gjson.Null {
		cert.IsClaimed = uc.Get("claimed").Bool()
		cert.IsMinted = uc.Get("mint").Bool()
		cert.ClaimNumber = uc.Get("certificateId").Int()
		cert.ClaimUsername = uc.Get("username").String()
	}
	return cert, nil
}

func certificateEntries(res gjson.Result) []gjson.Result {
	if res.IsArray() {
		return res.Array()
	}
	if res.IsObject() {
		return []gjson.Result{res}
	}
	return nil
}

func (c *Client) ClaimCertificate(ctx context.Context, s *platform.Session, certificateID, username string) error {
	data, err := c.query(ctx, s, "ClaimCertification", claimCertificationMutation, map[string]any{
		"certificationId": certificateID,
		"username":        username,
	}, true)
	if err != nil {
		return err
	}
	if !data.Get("certificate.claimed").Bool() {
		return platform.Retryable("ClaimCertification", fmt.Errorf("%w: certificate %s", platform.ErrNotClaimable, certificateID))
	}
	return nil
}

func (c *Client) CertificateSignature(ctx context.Context, s *platform.Session, certificateID, address string) (string, error) {
	data, err := c.query(ctx, s, "GetCertificationSignature", certificationSignatureMutation, map[string]any{
		"certificationId": certificateID,
		"address":         address,
	}, true)
	if err != nil {
		return "", err
	}
	sig := data.Get("signature.signature").String()
	if sig == "" {
		return "", platform.Retryable("GetCertificationSignature", fmt.Errorf("%w: signature", platform.ErrNoData))
	}
	return sig, nil
}

// CreatePet creates the account pet. An existing pet is not an error.
func (c *Client) CreatePet(ctx context.Context, s *platform.Session, name string) error {
	_, err := c.query(ctx, s, "CreatePet", createPetMutation, map[string]any{
		"name": name,
	}, true)
	if msg, ok := apiMessage(err); ok && strings.Contains(strings.ToLower(msg), msgPetExists) {
		return nil
	}
	return err
}

func (c *Client) FeedPet(ctx context.Context, s *platform.Session, amount int64) error {
	data, err := c.query(ctx, s, "FeedPet", feedPetMutation, map[string]any{
		"amount": amount,
	}, true)
	if err != nil {
		return err
	}
	if r := data.Get("feedPet"); !r.Exists() || r.Type == gjson.Null {
		return platform.Retryable("FeedPet", platform.ErrNoData)
	}
	return nil
}
