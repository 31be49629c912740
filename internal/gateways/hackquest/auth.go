package hackquest

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/questpilot/hackquest-bot/internal/domain/platform"
	"github.com/tidwall/gjson"
)

func (c *Client) LoginChallenge(ctx context.Context, s *platform.Session, address string) (platform.Challenge, error) {
	data, err := c.query(ctx, s, "GetNonce", getNonceMutation, map[string]any{
		"address": address,
	}, false)
	if err != nil {
		return platform.Challenge{}, err
	}

	challenge := platform.Challenge{
		Message: data.Get("nonce.message").String(),
		Nonce:   data.Get("nonce.nonce").String(),
	}
	if challenge.Message == "" || challenge.Nonce == "" {
		return platform.Challenge{}, platform.Retryable("GetNonce", fmt.Errorf("%w: nonce", platform.ErrNoData))
	}
	return challenge, nil
}

func (c *Client) Login(ctx context.Context, s *platform.Session, address string, challenge platform.Challenge, signature string) (platform.Identity, error) {
	data, err := c.query(ctx, s, "LoginByWallet", loginByWalletMutation, map[string]any{
		"input": map[string]any{
			"address":    address,
			"chainId":    1,
			"signature":  signature,
			"message":    challenge.Message,
			"nonce":      challenge.Nonce,
			"walletType": walletTypes[rand.IntN(len(walletTypes))],
		},
	}, false)
	if err != nil {
		return platform.Identity{}, err
	}
	return parseIdentity("LoginByWallet", data.Get("loginByWallet"))
}

// ActivateAccount activates a fresh account, optionally under an invite
// code. The returned identity carries a new access token.
func (c *Client) ActivateAccount(ctx context.Context, s *platform.Session, refCode string) (platform.Identity, error) {
	if !s.Authenticated() {
		return platform.Identity{}, platform.Fatal("ActivateUser", platform.ErrUnauthenticated)
	}
	vars := map[string]any{"accessToken": s.AccessToken}
	if refCode != "" {
		vars["inviteCode"] = refCode
	}

	data, err := c.query(ctx, s, "ActivateUser", activateUserMutation, vars, false)
	if err != nil {
		return platform.Identity{}, err
	}
	return parseIdentity("ActivateUser", data.Get("activateUser"))
}

func parseIdentity(op string, payload gjson.Result) (platform.Identity, error) {
	token := payload.Get("access_token").String()
	if token == "" {
		return platform.Identity{}, platform.Retryable(op, fmt.Errorf("%w: access_token", platform.ErrNoData))
	}
	user := payload.Get("user")
	return platform.Identity{
		AccessToken: token,
		Status:      platform.AccountStatus(user.Get("status").String()),
		ID:          user.Get("id").String(),
		UID:         user.Get("uid").Int(),
		InviteCode:  user.Get("inviteCode").String(),
		InvitedBy:   user.Get("invitedBy").String(),
	}, nil
}
