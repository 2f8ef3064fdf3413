// =============================================================================
// internal/route53/client.go - Hosted zone and record enumeration
// =============================================================================
package route53

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awsr53 "github.com/aws/aws-sdk-go-v2/service/route53"
	rtypes "github.com/aws/aws-sdk-go-v2/service/route53/types"

	"github.com/bryanCE/zoneaudit/internal/audit"
)

// Zone describes one hosted zone.
type Zone struct {
	Name        string `json:"name"`
	ID          string `json:"id"`
	Private     bool   `json:"private"`
	RecordCount int64  `json:"record_count"`
}

// API is the subset of the Route53 service client the tool uses.
type API interface {
	ListHostedZones(ctx context.Context, params *awsr53.ListHostedZonesInput, optFns ...func(*awsr53.Options)) (*awsr53.ListHostedZonesOutput, error)
	ListResourceRecordSets(ctx context.Context, params *awsr53.ListResourceRecordSetsInput, optFns ...func(*awsr53.Options)) (*awsr53.ListResourceRecordSetsOutput, error)
}

// Client enumerates hosted zones and their record sets.
type Client struct {
	api API
}

// NewClient builds a client from the AWS shared config, optionally through a
// named profile. Credential and profile errors surface here and abort the
// run; there is nothing to audit without a zone listing.
func NewClient(ctx context.Context, profile string) (*Client, error) {
	var optFns []func(*config.LoadOptions) error
	if profile != "" {
		optFns = append(optFns, config.WithSharedConfigProfile(profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &Client{api: awsr53.NewFromConfig(cfg)}, nil
}

// NewClientWithAPI wraps an existing API implementation.
func NewClientWithAPI(api API) *Client {
	return &Client{api: api}
}

// ListZones returns every hosted zone visible to the caller.
func (c *Client) ListZones(ctx context.Context) ([]Zone, error) {
	var zones []Zone

	input := &awsr53.ListHostedZonesInput{}
	for {
		page, err := c.api.ListHostedZones(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("listing hosted zones: %w", err)
		}

		for _, hz := range page.HostedZones {
			zones = append(zones, zoneFromHostedZone(hz))
		}

		if !page.IsTruncated {
			break
		}
		input.Marker = page.NextMarker
	}

	return zones, nil
}

// FindZone locates the hosted zone matching name and the privacy flag.
// A missing zone is an error: the audit cannot proceed without one.
func (c *Client) FindZone(ctx context.Context, name string, private bool) (Zone, error) {
	zones, err := c.ListZones(ctx)
	if err != nil {
		return Zone{}, err
	}

	want := audit.Normalize(name)
	for _, zone := range zones {
		if audit.Normalize(zone.Name) == want && zone.Private == private {
			return zone, nil
		}
	}

	return Zone{}, fmt.Errorf("hosted zone %q with private=%t not found", name, private)
}

// ListRecords returns the zone's record sets in Route53 listing order.
func (c *Client) ListRecords(ctx context.Context, zoneID string) ([]audit.Record, error) {
	var records []audit.Record

	input := &awsr53.ListResourceRecordSetsInput{HostedZoneId: aws.String(zoneID)}
	for {
		page, err := c.api.ListResourceRecordSets(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("listing record sets for zone %s: %w", zoneID, err)
		}

		for _, rs := range page.ResourceRecordSets {
			records = append(records, recordFromSet(rs))
		}

		if !page.IsTruncated {
			break
		}
		input.StartRecordName = page.NextRecordName
		input.StartRecordType = page.NextRecordType
		input.StartRecordIdentifier = page.NextRecordIdentifier
	}

	return records, nil
}

func zoneFromHostedZone(hz rtypes.HostedZone) Zone {
	zone := Zone{
		Name: aws.ToString(hz.Name),
		ID:   trimZoneID(aws.ToString(hz.Id)),
	}
	if hz.Config != nil {
		zone.Private = hz.Config.PrivateZone
	}
	if hz.ResourceRecordSetCount != nil {
		zone.RecordCount = *hz.ResourceRecordSetCount
	}
	return zone
}

// trimZoneID strips the "/hostedzone/" prefix Route53 puts on zone IDs.
func trimZoneID(id string) string {
	if i := strings.LastIndex(id, "/"); i >= 0 {
		return id[i+1:]
	}
	return id
}

// recordFromSet converts one record set. Alias record sets carry no resource
// records, so the alias DNS name becomes the record's single value and alias
// chains still resolve through the index.
func recordFromSet(rs rtypes.ResourceRecordSet) audit.Record {
	rec := audit.Record{
		Name: aws.ToString(rs.Name),
		Type: audit.RecordType(rs.Type),
	}
	for _, rr := range rs.ResourceRecords {
		rec.Values = append(rec.Values, aws.ToString(rr.Value))
	}
	if len(rec.Values) == 0 && rs.AliasTarget != nil {
		rec.Values = append(rec.Values, aws.ToString(rs.AliasTarget.DNSName))
	}
	return rec
}
