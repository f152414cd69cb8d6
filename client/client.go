package client

import (
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"cloudrift-driver/config"
)

// EC2Client builds an EC2 client from the configured static credentials.
func EC2Client(s *config.Settings) *ec2.Client {
	return ec2.New(ec2.Options{
		Region:      s.Region,
		Credentials: credentials.NewStaticCredentialsProvider(s.AccessKey, s.SecretKey, s.SessionToken),
	})
}

// STSClient builds an STS client used by the identity preflight.
func STSClient(s *config.Settings) *sts.Client {
	return sts.New(sts.Options{
		Region:      s.Region,
		Credentials: credentials.NewStaticCredentialsProvider(s.AccessKey, s.SecretKey, s.SessionToken),
	})
}
