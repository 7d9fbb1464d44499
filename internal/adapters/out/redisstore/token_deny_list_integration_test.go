package redisstore_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/adapters/out/redisstore"
	"storefront/internal/pkg/errs"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

type TokenDenyListIntegrationTestSuite struct {
	suite.Suite
	container *tcredis.RedisContainer
	client    *goredis.Client
	denyList  *redisstore.TokenDenyList
}

func (suite *TokenDenyListIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	suite.Require().NoError(err)
	suite.container = container

	uri, err := container.ConnectionString(ctx)
	suite.Require().NoError(err)

	options, err := goredis.ParseURL(uri)
	suite.Require().NoError(err)
	suite.client = goredis.NewClient(options)
}

func (suite *TokenDenyListIntegrationTestSuite) TearDownSuite() {
	if suite.client != nil {
		suite.Require().NoError(suite.client.Close())
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *TokenDenyListIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.client.FlushAll(context.Background()).Err())
	suite.denyList = redisstore.NewTokenDenyList(suite.client)
}

func (suite *TokenDenyListIntegrationTestSuite) TestRevoke_MarksTokenRevoked() {
	ctx := context.Background()

	suite.Require().NoError(suite.denyList.Revoke(ctx, "token-1", time.Minute))

	revoked, err := suite.denyList.IsRevoked(ctx, "token-1")
	suite.Require().NoError(err)
	suite.True(revoked)
}

func (suite *TokenDenyListIntegrationTestSuite) TestIsRevoked_UnknownToken_ReturnsFalse() {
	revoked, err := suite.denyList.IsRevoked(context.Background(), "never-seen")

	suite.Require().NoError(err)
	suite.False(revoked)
}

func (suite *TokenDenyListIntegrationTestSuite) TestRevoke_EntryExpiresWithToken() {
	ctx := context.Background()

	suite.Require().NoError(suite.denyList.Revoke(ctx, "token-1", 100*time.Millisecond))

	suite.Eventually(func() bool {
		revoked, err := suite.denyList.IsRevoked(ctx, "token-1")
		return err == nil && !revoked
	}, 2*time.Second, 50*time.Millisecond)
}

func (suite *TokenDenyListIntegrationTestSuite) TestRevoke_ExpiredTokenNeedsNoEntry() {
	ctx := context.Background()

	suite.Require().NoError(suite.denyList.Revoke(ctx, "token-1", -time.Minute))

	revoked, err := suite.denyList.IsRevoked(ctx, "token-1")
	suite.Require().NoError(err)
	suite.False(revoked)
}

func (suite *TokenDenyListIntegrationTestSuite) TestRevoke_EmptyTokenID_Fails() {
	err := suite.denyList.Revoke(context.Background(), "", time.Minute)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrValueIsRequired)
}

func TestTokenDenyListIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(TokenDenyListIntegrationTestSuite))
}
