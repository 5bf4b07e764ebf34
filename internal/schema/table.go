package schema

// resourceSchemas is the built-in table of known resource type schemas.
// It covers the resource types that show up in the worked examples; anything
// else is reported as an unknown-type warning rather than an error.
var resourceSchemas = map[string]ResourceSchema{
	"AWS::IAM::Role": {
		Type:     "AWS::IAM::Role",
		Required: []string{"AssumeRolePolicyDocument"},
		Properties: map[string]PropertySchema{
			"AssumeRolePolicyDocument": {Type: "Json", Required: true},
			"RoleName":                 {Type: "String"},
			"Description":              {Type: "String"},
			"ManagedPolicyArns":        {Type: "List"},
			"Policies":                 {Type: "List"},
			"Path":                     {Type: "String"},
			"MaxSessionDuration":       {Type: "Integer"},
			"Tags":                     {Type: "List"},
		},
	},
	"AWS::IAM::Policy": {
		Type:     "AWS::IAM::Policy",
		Required: []string{"PolicyName", "PolicyDocument"},
		Properties: map[string]PropertySchema{
			"PolicyName":     {Type: "String", Required: true},
			"PolicyDocument": {Type: "Json", Required: true},
			"Roles":          {Type: "List"},
			"Users":          {Type: "List"},
			"Groups":         {Type: "List"},
		},
	},
	"AWS::S3::Bucket": {
		Type: "AWS::S3::Bucket",
		Properties: map[string]PropertySchema{
			"BucketName":           {Type: "String"},
			"AccessControl":        {Type: "String"},
			"VersioningConfiguration": {Type: "Map"},
			"BucketEncryption":     {Type: "Map"},
			"WebsiteConfiguration": {Type: "Map"},
			"LifecycleConfiguration": {Type: "Map"},
			"Tags":                 {Type: "List"},
		},
	},
	"AWS::Lambda::Function": {
		Type:     "AWS::Lambda::Function",
		Required: []string{"Code", "Role"},
		Properties: map[string]PropertySchema{
			"Code":         {Type: "Map", Required: true},
			"Role":         {Type: "String", Required: true},
			"FunctionName": {Type: "String"},
			"Handler":      {Type: "String"},
			"Runtime":      {Type: "String"},
			"MemorySize":   {Type: "Integer"},
			"Timeout":      {Type: "Integer"},
			"Environment":  {Type: "Map"},
			"Description":  {Type: "String"},
			"Tags":         {Type: "List"},
		},
	},
	"AWS::Lambda::Permission": {
		Type:     "AWS::Lambda::Permission",
		Required: []string{"Action", "FunctionName", "Principal"},
		Properties: map[string]PropertySchema{
			"Action":       {Type: "String", Required: true},
			"FunctionName": {Type: "String", Required: true},
			"Principal":    {Type: "String", Required: true},
			"SourceArn":    {Type: "String"},
		},
	},
	"AWS::SNS::Topic": {
		Type: "AWS::SNS::Topic",
		Properties: map[string]PropertySchema{
			"TopicName":   {Type: "String"},
			"DisplayName": {Type: "String"},
			"FifoTopic":   {Type: "Boolean"},
			"Subscription": {Type: "List"},
			"Tags":        {Type: "List"},
		},
	},
	"AWS::SQS::Queue": {
		Type: "AWS::SQS::Queue",
		Properties: map[string]PropertySchema{
			"QueueName":              {Type: "String"},
			"FifoQueue":              {Type: "Boolean"},
			"VisibilityTimeout":      {Type: "Integer"},
			"MessageRetentionPeriod": {Type: "Integer"},
			"RedrivePolicy":          {Type: "Json"},
			"Tags":                   {Type: "List"},
		},
	},
	"AWS::DynamoDB::Table": {
		Type:     "AWS::DynamoDB::Table",
		Required: []string{"KeySchema"},
		Properties: map[string]PropertySchema{
			"TableName":            {Type: "String"},
			"KeySchema":            {Type: "List", Required: true},
			"AttributeDefinitions": {Type: "List"},
			"BillingMode":          {Type: "String", AllowedValues: []string{"PROVISIONED", "PAY_PER_REQUEST"}},
			"ProvisionedThroughput": {Type: "Map"},
			"Tags":                 {Type: "List"},
		},
	},
	"AWS::EC2::SecurityGroup": {
		Type:     "AWS::EC2::SecurityGroup",
		Required: []string{"GroupDescription"},
		Properties: map[string]PropertySchema{
			"GroupDescription":     {Type: "String", Required: true},
			"GroupName":            {Type: "String"},
			"VpcId":                {Type: "String"},
			"SecurityGroupIngress": {Type: "List"},
			"SecurityGroupEgress":  {Type: "List"},
			"Tags":                 {Type: "List"},
		},
	},
	"AWS::Logs::LogGroup": {
		Type: "AWS::Logs::LogGroup",
		Properties: map[string]PropertySchema{
			"LogGroupName":    {Type: "String"},
			"RetentionInDays": {Type: "Integer"},
			"Tags":            {Type: "List"},
		},
	},
}
